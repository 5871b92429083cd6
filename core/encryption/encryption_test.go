// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package encryption

import (
	"bytes"
	"errors"
	"testing"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/security"
)

func testParams(t *testing.T, cipherName string) Params {
	t.Helper()
	opts, err := NewKDFOptions(2)
	if err != nil {
		t.Fatalf("NewKDFOptions: %v", err)
	}
	return Params{Cipher: cipherName, KDF: KDFBcrypt, Options: opts}
}

func TestRoundTripEveryCipher(t *testing.T) {
	pass := security.FromString("hunter2")
	for _, name := range CipherNames() {
		t.Run(name, func(t *testing.T) {
			p := testParams(t, name)
			bs, err := p.BlockSize()
			if err != nil {
				t.Fatalf("BlockSize: %v", err)
			}
			plain := bytes.Repeat([]byte{0x5a}, bs*3)
			ct, err := Encrypt(p, pass, plain)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if bytes.Equal(ct, plain) {
				t.Fatalf("ciphertext equals plaintext")
			}
			got, err := Decrypt(p, pass, ct)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(got, plain) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}

func TestWrongPassphraseYieldsGarbage(t *testing.T) {
	p := testParams(t, DefaultCipher)
	plain := make([]byte, 32)
	ct, err := Encrypt(p, security.FromString("right"), plain)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := Decrypt(p, security.FromString("wrong"), ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if bytes.Equal(got, plain) {
		t.Fatalf("wrong passphrase recovered the plaintext")
	}
}

func TestDecryptRequiresPassphrase(t *testing.T) {
	p := testParams(t, DefaultCipher)
	_, err := Decrypt(p, nil, make([]byte, 16))
	if !errors.Is(err, keyerr.ErrPassphraseRequired) {
		t.Fatalf("expected PassphraseRequired, got %v", err)
	}
	_, err = Encrypt(p, security.Secret{}, make([]byte, 16))
	if !errors.Is(err, keyerr.ErrPassphraseRequired) {
		t.Fatalf("expected PassphraseRequired from Encrypt, got %v", err)
	}
}

func TestUnencryptedPassesThrough(t *testing.T) {
	p := Params{Cipher: CipherNone, KDF: KDFNone}
	in := []byte("0123456789abcdef")
	got, err := Decrypt(p, nil, in)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("pass-through changed data")
	}
	bs, _ := p.BlockSize()
	if bs != UnencryptedBlockSize {
		t.Fatalf("block size = %d", bs)
	}
}

func TestUnsupportedCipher(t *testing.T) {
	for _, name := range []string{"chacha20-poly1305@openssh.com", "aes256-gcm@openssh.com", "blowfish-cbc"} {
		_, err := LookupCipher(name)
		if keyerr.KindOf(err) != keyerr.UnsupportedCipher {
			t.Fatalf("%s: expected UnsupportedCipher, got %v", name, err)
		}
		p := Params{Cipher: name, KDF: KDFBcrypt}
		if keyerr.KindOf(p.Validate()) != keyerr.UnsupportedCipher {
			t.Fatalf("%s: Validate did not reject cipher", name)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		p    Params
		kind keyerr.Kind
	}{
		{Params{Cipher: CipherNone, KDF: KDFBcrypt}, keyerr.MalformedEncoding},
		{Params{Cipher: DefaultCipher, KDF: KDFNone}, keyerr.MalformedEncoding},
		{Params{Cipher: DefaultCipher, KDF: "scrypt"}, keyerr.UnsupportedCipher},
	}
	for _, c := range cases {
		if got := keyerr.KindOf(c.p.Validate()); got != c.kind {
			t.Fatalf("%+v: kind = %v, want %v", c.p, got, c.kind)
		}
	}
}

func TestKDFOptionsRoundTrip(t *testing.T) {
	opts := KDFOptions{Salt: bytes.Repeat([]byte{7}, SaltSize), Rounds: 16}
	blob := opts.Marshal(KDFBcrypt)
	got, err := ParseKDFOptions(KDFBcrypt, blob)
	if err != nil {
		t.Fatalf("ParseKDFOptions: %v", err)
	}
	if !bytes.Equal(got.Salt, opts.Salt) || got.Rounds != opts.Rounds {
		t.Fatalf("got %+v", got)
	}
	if opts.Marshal(KDFNone) != nil {
		t.Fatalf("none KDF must marshal to an empty blob")
	}
}

func TestParseKDFOptionsErrors(t *testing.T) {
	if _, err := ParseKDFOptions(KDFNone, []byte{1}); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("none with options: %v", err)
	}
	if _, err := ParseKDFOptions(KDFBcrypt, []byte{0, 0, 0, 4, 1}); keyerr.KindOf(err) != keyerr.TruncatedInput {
		t.Fatalf("short salt: %v", err)
	}
	trailing := append(KDFOptions{Salt: []byte{1}, Rounds: 1}.Marshal(KDFBcrypt), 0)
	if _, err := ParseKDFOptions(KDFBcrypt, trailing); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("trailing bytes: %v", err)
	}
	zero := KDFOptions{Salt: []byte{1}, Rounds: 0}.Marshal(KDFBcrypt)
	if _, err := ParseKDFOptions(KDFBcrypt, zero); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("zero rounds: %v", err)
	}
	if _, err := ParseKDFOptions("argon2", nil); keyerr.KindOf(err) != keyerr.UnsupportedCipher {
		t.Fatalf("unknown kdf: %v", err)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	a, err := DeriveKey(security.FromString("pw"), salt, 2, 48)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	b, _ := DeriveKey(security.FromString("pw"), salt, 2, 48)
	c, _ := DeriveKey(security.FromString("pw"), salt, 3, 48)
	if a.Len() != 48 || !bytes.Equal(a, b) {
		t.Fatalf("derivation not deterministic")
	}
	if bytes.Equal(a, c) {
		t.Fatalf("rounds did not affect output")
	}
}

func TestCipherRejectsPartialBlock(t *testing.T) {
	c, _ := LookupCipher("aes128-cbc")
	_, err := c.Decrypt(make([]byte, 16), make([]byte, 16), make([]byte, 15))
	if keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("expected MalformedEncoding, got %v", err)
	}
}
