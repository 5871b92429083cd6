// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/core/wire"
)

const fixturePass = "correct horse"

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

type fixture struct {
	file    string
	keyType keys.KeyType
	size    int
	comment string
	pass    string
}

var opensshFixtures = []fixture{
	{"ed25519", keys.Ed25519, 256, "test@sshkeys", ""},
	{"rsa", keys.RSA, 2048, "rsa-key", ""},
	{"dsa", keys.DSA, 1024, "dsa-key", ""},
	{"ecdsa256", keys.ECDSA, 256, "", ""},
	{"ecdsa384", keys.ECDSA, 384, "", ""},
	{"ecdsa521", keys.ECDSA, 521, "", ""},
	{"ed25519_enc", keys.Ed25519, 256, "encrypted ed25519", fixturePass},
	{"rsa_enc", keys.RSA, 2048, "", fixturePass},
	{"ecdsa256_cbc", keys.ECDSA, 256, "ecdsa-cbc", fixturePass},
}

func TestParseOpenSSHFixtures(t *testing.T) {
	for _, f := range opensshFixtures {
		t.Run(f.file, func(t *testing.T) {
			data := readFixture(t, f.file)
			v, comment, params, err := ParseOpenSSH(data, security.FromString(f.pass))
			if err != nil {
				t.Fatalf("ParseOpenSSH: %v", err)
			}
			if v.Type() != f.keyType || v.Size() != f.size {
				t.Fatalf("got %v %d, want %v %d", v.Type(), v.Size(), f.keyType, f.size)
			}
			if !keys.HasPrivate(v) {
				t.Fatalf("parsed key has no private half")
			}
			if f.comment != "" && comment != f.comment {
				t.Fatalf("comment = %q, want %q", comment, f.comment)
			}
			if (f.pass != "") != (params.Cipher != "none") {
				t.Fatalf("unexpected cipher %q", params.Cipher)
			}

			pub, pubComment, err := ParsePublicLine(readFixture(t, f.file+".pub"))
			if err != nil {
				t.Fatalf("ParsePublicLine: %v", err)
			}
			if !v.Equal(pub) {
				t.Fatalf("private key does not match %s.pub", f.file)
			}
			if pubComment != comment {
				t.Fatalf("public comment %q, private comment %q", pubComment, comment)
			}
		})
	}
}

func TestParseOpenSSHMatchesXCryptoSSH(t *testing.T) {
	for _, name := range []string{"ed25519", "rsa", "ecdsa256", "ecdsa384", "ecdsa521"} {
		data := readFixture(t, name)
		raw, err := ssh.ParseRawPrivateKey(data)
		if err != nil {
			t.Fatalf("%s: x/crypto/ssh: %v", name, err)
		}
		want, err := keys.FromCrypto(raw)
		if err != nil {
			t.Fatalf("%s: FromCrypto: %v", name, err)
		}
		got, _, _, err := ParseOpenSSH(data, nil)
		if err != nil {
			t.Fatalf("%s: ParseOpenSSH: %v", name, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: key differs from x/crypto/ssh", name)
		}
	}
}

func TestOpenSSHReexportIsByteIdentical(t *testing.T) {
	for _, f := range opensshFixtures {
		t.Run(f.file, func(t *testing.T) {
			data := readFixture(t, f.file)
			pass := security.FromString(f.pass)
			v, comment, params, err := ParseOpenSSH(data, pass)
			if err != nil {
				t.Fatalf("ParseOpenSSH: %v", err)
			}
			out, err := MarshalOpenSSH(v.(keys.PrivateParts), comment, pass, params)
			if err != nil {
				t.Fatalf("MarshalOpenSSH: %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Fatalf("re-export differs from original:\n%s\nvs\n%s", out, data)
			}
		})
	}
}

func TestOpenSSHEncryptRoundTrip(t *testing.T) {
	v, err := keys.Generate(keys.Ed25519, 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	pass := security.FromString("s3cret")
	out, err := MarshalOpenSSH(v.(keys.PrivateParts), "fresh", pass, nil)
	if err != nil {
		t.Fatalf("MarshalOpenSSH: %v", err)
	}
	enc, err := OpenSSHEncrypted(out)
	if err != nil || !enc {
		t.Fatalf("OpenSSHEncrypted = %v, %v", enc, err)
	}
	got, comment, params, err := ParseOpenSSH(out, pass)
	if err != nil {
		t.Fatalf("ParseOpenSSH: %v", err)
	}
	if !got.Equal(v) || comment != "fresh" {
		t.Fatalf("round trip mismatch")
	}
	if params.Cipher != "aes256-ctr" || params.KDF != "bcrypt" || params.Rounds != 16 || len(params.Salt) != 16 {
		t.Fatalf("unexpected defaults %+v", params)
	}
	if _, err := ssh.ParseRawPrivateKeyWithPassphrase(out, []byte("s3cret")); err != nil {
		t.Fatalf("x/crypto/ssh cannot read our output: %v", err)
	}
}

func TestOpenSSHPassphraseErrors(t *testing.T) {
	data := readFixture(t, "ed25519_enc")
	_, _, _, err := ParseOpenSSH(data, nil)
	if !errors.Is(err, keyerr.ErrPassphraseRequired) {
		t.Fatalf("no passphrase: %v", err)
	}
	_, _, _, err = ParseOpenSSH(data, security.FromString("battery staple"))
	if !errors.Is(err, keyerr.ErrIncorrectPassphraseOrCorruptKey) {
		t.Fatalf("wrong passphrase: %v", err)
	}
}

func TestPeekOpenSSHPublicWithoutPassphrase(t *testing.T) {
	pub, err := PeekOpenSSHPublic(readFixture(t, "ed25519_enc"))
	if err != nil {
		t.Fatalf("PeekOpenSSHPublic: %v", err)
	}
	want, _, err := ParsePublicLine(readFixture(t, "ed25519_enc.pub"))
	if err != nil {
		t.Fatalf("ParsePublicLine: %v", err)
	}
	if !pub.Equal(want) || keys.HasPrivate(pub) {
		t.Fatalf("peeked key mismatch")
	}
}

func TestOpenSSHTruncationNeverPanics(t *testing.T) {
	raw, err := dearmor(readFixture(t, "ed25519"))
	if err != nil {
		t.Fatalf("dearmor: %v", err)
	}
	for i := 0; i < len(raw); i++ {
		if _, _, _, err := ParseOpenSSH(raw[:i], nil); err == nil {
			t.Fatalf("prefix of %d bytes parsed without error", i)
		}
	}
	if _, _, _, err := ParseOpenSSH(raw, nil); err != nil {
		t.Fatalf("raw container: %v", err)
	}
}

// ed25519 fixture: private section is 143 bytes plus one padding byte.
const ed25519SectionLen = 144

func TestOpenSSHCorruptContainer(t *testing.T) {
	raw, err := dearmor(readFixture(t, "ed25519"))
	if err != nil {
		t.Fatalf("dearmor: %v", err)
	}
	mutate := func(fn func(b []byte)) []byte {
		b := append([]byte(nil), raw...)
		fn(b)
		return b
	}
	cases := map[string]struct {
		data []byte
		kind keyerr.Kind
	}{
		"bad padding":   {mutate(func(b []byte) { b[len(b)-1] = 9 }), keyerr.MalformedEncoding},
		"check int":     {mutate(func(b []byte) { b[len(b)-ed25519SectionLen] ^= 1 }), keyerr.MalformedEncoding},
		"two keys":      {mutate(func(b []byte) { b[38] = 2 }), keyerr.MalformedEncoding},
		"bad magic":     {mutate(func(b []byte) { b[0] = 'O' }), keyerr.UnrecognizedFormat},
		"trailing byte": {append(append([]byte(nil), raw...), 0), keyerr.MalformedEncoding},
	}
	for name, c := range cases {
		_, _, _, err := ParseOpenSSH(c.data, nil)
		if keyerr.KindOf(err) != c.kind {
			t.Fatalf("%s: kind %v, want %v (%v)", name, keyerr.KindOf(err), c.kind, err)
		}
	}
}

func TestOpenSSHUnsupportedCipher(t *testing.T) {
	w := wire.NewWriter()
	w.PutRaw([]byte(opensshMagic))
	w.PutText("chacha20-poly1305@openssh.com")
	w.PutText("bcrypt")
	w.PutString(nil)
	w.PutUint32(1)
	w.PutString(nil)
	w.PutString(nil)
	_, _, _, err := ParseOpenSSH(w.Bytes(), security.FromString("x"))
	if !errors.Is(err, keyerr.ErrUnsupportedCipher) {
		t.Fatalf("expected UnsupportedCipher, got %v", err)
	}
}

func TestSplitPublicLine(t *testing.T) {
	alg, key, comment, err := SplitPublicLine("ssh-rsa AAAAB3NzaC1yc2EAAAADAQABAAABAQC3 test-key@example.com")
	if err != nil || alg != "ssh-rsa" || key == "" || comment != "test-key@example.com" {
		t.Fatalf("normal line: %q %q %q %v", alg, key, comment, err)
	}

	alg, key, comment, err = SplitPublicLine(`no-agent-forwarding,command="echo hi" ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIBk two words`)
	if err != nil || alg != "ssh-ed25519" || key == "" || comment != "two words" {
		t.Fatalf("options line: %q %q %q %v", alg, key, comment, err)
	}

	alg, key, comment, err = SplitPublicLine(`command="exec ssh-agent bash",from="10.0.0.1" ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIBk c`)
	if err != nil || alg != "ssh-ed25519" || key != "AAAAC3NzaC1lZDI1NTE5AAAAIBk" || comment != "c" {
		t.Fatalf("quoted option with spaces: %q %q %q %v", alg, key, comment, err)
	}

	alg, _, comment, err = SplitPublicLine(`command="echo \"ssh-rsa x\"" ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIBk`)
	if err != nil || alg != "ssh-ed25519" || comment != "" {
		t.Fatalf("escaped quote in option: %q %q %v", alg, comment, err)
	}

	if _, _, _, err := SplitPublicLine(""); err == nil {
		t.Fatalf("expected error for empty line")
	}
	if _, _, _, err := SplitPublicLine("just-some-text"); keyerr.KindOf(err) != keyerr.UnrecognizedFormat {
		t.Fatalf("expected UnrecognizedFormat, got %v", err)
	}
	if _, _, _, err := SplitPublicLine("ssh-ed25519"); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("expected MalformedEncoding, got %v", err)
	}
}

func TestPublicLineRoundTrip(t *testing.T) {
	data := readFixture(t, "ed25519.pub")
	v, comment, err := ParsePublicLine(data)
	if err != nil {
		t.Fatalf("ParsePublicLine: %v", err)
	}
	if got := MarshalPublicLine(v, comment); got != string(data) {
		t.Fatalf("MarshalPublicLine = %q, want %q", got, data)
	}

	padded := append([]byte("\n  # keys\n\t"), data...)
	if _, c, err := ParsePublicLine(padded); err != nil || c != comment {
		t.Fatalf("whitespace and comments not tolerated: %v", err)
	}

	fields := strings.Fields(string(data))
	spaced := fields[0] + " " + fields[1] + " alice  laptop\tkey\n"
	v, comment, err = ParsePublicLine([]byte(spaced))
	if err != nil || comment != "alice  laptop\tkey" {
		t.Fatalf("comment whitespace not kept: %q %v", comment, err)
	}
	if got := MarshalPublicLine(v, comment); got != spaced {
		t.Fatalf("MarshalPublicLine = %q, want %q", got, spaced)
	}

	noComment := strings.Join(fields[:2], " ")
	if _, c, err := ParsePublicLine([]byte(noComment)); err != nil || c != "" {
		t.Fatalf("line without comment: %q %v", c, err)
	}
}

func TestPublicLineNameMismatch(t *testing.T) {
	fields := strings.Fields(string(readFixture(t, "ed25519.pub")))
	line := "ssh-rsa " + fields[1]
	if _, _, err := ParsePublicLine([]byte(line)); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("expected MalformedEncoding, got %v", err)
	}
	if _, _, err := ParsePublicLine([]byte("ssh-ed25519 !!!notbase64")); keyerr.KindOf(err) != keyerr.MalformedEncoding {
		t.Fatalf("expected MalformedEncoding for bad base64, got %v", err)
	}
	if _, _, err := ParsePublicLine([]byte("sk-ssh-ed25519@openssh.com AAAA")); keyerr.KindOf(err) != keyerr.UnsupportedAlgorithm {
		t.Fatalf("expected UnsupportedAlgorithm, got %v", err)
	}
}

func TestCheckAlgorithm(t *testing.T) {
	ed, _, _ := ParsePublicLine(readFixture(t, "ed25519.pub"))
	rsa, _, _ := ParsePublicLine(readFixture(t, "rsa.pub"))
	dsa, _, _ := ParsePublicLine(readFixture(t, "dsa.pub"))
	if CheckAlgorithm(ed) != "" {
		t.Fatalf("ed25519 should not warn")
	}
	if CheckAlgorithm(rsa) == "" || CheckAlgorithm(dsa) == "" {
		t.Fatalf("rsa-2048 and dsa should warn")
	}
}

func TestRFC4716(t *testing.T) {
	for _, name := range []string{"ed25519", "rsa"} {
		v, comment, err := ParseRFC4716(readFixture(t, name+"_rfc4716.pub"))
		if err != nil {
			t.Fatalf("%s: ParseRFC4716: %v", name, err)
		}
		if !strings.Contains(comment, "converted by") {
			t.Fatalf("%s: comment %q", name, comment)
		}
		want, _, _ := ParsePublicLine(readFixture(t, name+".pub"))
		if !v.Equal(want) {
			t.Fatalf("%s: key mismatch", name)
		}
		if out := MarshalRFC4716(v, comment); out != string(readFixture(t, name+"_rfc4716.pub")) {
			t.Fatalf("%s: MarshalRFC4716 differs:\n%s", name, out)
		}
	}

	v, _, _ := ParsePublicLine(readFixture(t, "ed25519.pub"))
	long := strings.Repeat("x", 150)
	back, comment, err := ParseRFC4716([]byte(MarshalRFC4716(v, long)))
	if err != nil || comment != long || !back.Equal(v) {
		t.Fatalf("long comment round trip: %q %v", comment, err)
	}
}

func TestParsePEMFixtures(t *testing.T) {
	cases := []struct {
		file    string
		same    string
		pass    string
		private bool
	}{
		{"rsa_pkcs1.pem", "rsa.pub", "", true},
		{"rsa_pkcs8.pem", "rsa.pub", "", true},
		{"rsa_pkcs8_enc.pem", "rsa.pub", fixturePass, true},
		{"ecdsa256_sec1.pem", "ecdsa256.pub", "", true},
		{"ecdsa256_legacy_enc.pem", "ecdsa256.pub", fixturePass, true},
		{"dsa_openssl.pem", "dsa.pub", "", true},
		{"rsa_pkix.pub.pem", "rsa.pub", "", false},
		{"rsa_pkcs1.pub.pem", "rsa.pub", "", false},
	}
	for _, c := range cases {
		v, err := ParsePEM(readFixture(t, c.file), security.FromString(c.pass))
		if err != nil {
			t.Fatalf("%s: ParsePEM: %v", c.file, err)
		}
		want, _, _ := ParsePublicLine(readFixture(t, c.same))
		if !v.Equal(want) {
			t.Fatalf("%s: key differs from %s", c.file, c.same)
		}
		if keys.HasPrivate(v) != c.private {
			t.Fatalf("%s: HasPrivate = %v", c.file, keys.HasPrivate(v))
		}
	}

	ed, err := ParsePEM(readFixture(t, "ed25519_pkcs8.pem"), nil)
	if err != nil || ed.Type() != keys.Ed25519 {
		t.Fatalf("ed25519 PKCS#8: %v", err)
	}
}

func TestParsePEMPassphraseErrors(t *testing.T) {
	for _, file := range []string{"rsa_pkcs8_enc.pem", "ecdsa256_legacy_enc.pem"} {
		data := readFixture(t, file)
		if _, err := ParsePEM(data, nil); !errors.Is(err, keyerr.ErrPassphraseRequired) {
			t.Fatalf("%s without passphrase: %v", file, err)
		}
		if _, err := ParsePEM(data, security.FromString("nope")); !errors.Is(err, keyerr.ErrIncorrectPassphraseOrCorruptKey) {
			t.Fatalf("%s wrong passphrase: %v", file, err)
		}
	}
	if !LegacyEncrypted(readFixture(t, "ecdsa256_legacy_enc.pem")) || LegacyEncrypted(readFixture(t, "rsa_pkcs1.pem")) {
		t.Fatalf("LegacyEncrypted misreports")
	}
}

func TestPEMExportRoundTrip(t *testing.T) {
	pass := security.FromString("pem pass")
	for _, file := range []string{"rsa", "ecdsa256", "dsa", "ed25519"} {
		v, _, _, err := ParseOpenSSH(readFixture(t, file), nil)
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		priv := v.(keys.PrivateParts)
		for _, p := range []security.Secret{nil, pass} {
			out, err := MarshalPEM(priv, p)
			if err != nil {
				t.Fatalf("%s: MarshalPEM: %v", file, err)
			}
			back, err := ParsePEM(out, p)
			if err != nil || !back.Equal(v) || !keys.HasPrivate(back) {
				t.Fatalf("%s: PEM round trip (pass=%v): %v", file, !p.Empty(), err)
			}
		}
		if file == "dsa" {
			if _, err := MarshalPKCS8(priv, nil); keyerr.KindOf(err) != keyerr.UnsupportedAlgorithm {
				t.Fatalf("dsa PKCS#8: %v", err)
			}
			if _, err := MarshalPEMPublic(v); keyerr.KindOf(err) != keyerr.UnsupportedAlgorithm {
				t.Fatalf("dsa public PEM: %v", err)
			}
			continue
		}
		for _, p := range []security.Secret{nil, pass} {
			out, err := MarshalPKCS8(priv, p)
			if err != nil {
				t.Fatalf("%s: MarshalPKCS8: %v", file, err)
			}
			f, _ := Detect(out)
			if (p == nil && f != FormatPKCS8) || (p != nil && f != FormatEncryptedPKCS8) {
				t.Fatalf("%s: PKCS#8 output detected as %v", file, f)
			}
			back, err := ParsePEM(out, p)
			if err != nil || !back.Equal(v) {
				t.Fatalf("%s: PKCS#8 round trip: %v", file, err)
			}
		}
		out, err := MarshalPEMPublic(v)
		if err != nil {
			t.Fatalf("%s: MarshalPEMPublic: %v", file, err)
		}
		back, err := ParsePEM(out, nil)
		if err != nil || !back.Equal(v) || keys.HasPrivate(back) {
			t.Fatalf("%s: public PEM round trip: %v", file, err)
		}
	}
}

func TestDetect(t *testing.T) {
	cases := map[string]Format{
		"ed25519":                 FormatOpenSSH,
		"ed25519_enc":             FormatOpenSSH,
		"ed25519.pub":             FormatOpenSSHPublic,
		"ecdsa521.pub":            FormatOpenSSHPublic,
		"rsa_pkcs1.pem":           FormatPEM,
		"dsa_openssl.pem":         FormatPEM,
		"ecdsa256_legacy_enc.pem": FormatPEM,
		"rsa_pkcs8.pem":           FormatPKCS8,
		"rsa_pkcs8_enc.pem":       FormatEncryptedPKCS8,
		"rsa_pkix.pub.pem":        FormatPEMPublic,
		"rsa_pkcs1.pub.pem":       FormatPEMPublic,
		"ed25519_rfc4716.pub":     FormatRFC4716,
	}
	for file, want := range cases {
		got, err := Detect(readFixture(t, file))
		if err != nil || got != want {
			t.Fatalf("%s: Detect = %v, %v; want %v", file, got, err, want)
		}
	}

	bagAttrs := "Bag Attributes\n    localKeyID: 01 02 03\nKey Attributes: <No Attributes>\n"
	withPreamble := append([]byte(bagAttrs), readFixture(t, "rsa_pkcs8.pem")...)
	if f, err := Detect(withPreamble); err != nil || f != FormatPKCS8 {
		t.Fatalf("PKCS#8 with preamble: Detect = %v, %v", f, err)
	}
	if p, err := Parse(withPreamble, nil); err != nil || p.Key.Type() != keys.RSA {
		t.Fatalf("PKCS#8 with preamble: Parse = %+v, %v", p, err)
	}

	raw, _ := dearmor(readFixture(t, "ed25519"))
	if f, _ := Detect(raw); f != FormatOpenSSH {
		t.Fatalf("raw container detected as %v", f)
	}

	for _, junk := range []string{"", "hello world", "-----BEGIN CERTIFICATE-----\nMA==\n-----END CERTIFICATE-----\n", "sk-ssh-ed25519@openssh.com AAAA"} {
		if _, err := Detect([]byte(junk)); !errors.Is(err, keyerr.ErrUnrecognizedFormat) {
			t.Fatalf("%q: expected UnrecognizedFormat, got %v", junk, err)
		}
	}
}

func TestParseDoesNotModifyInput(t *testing.T) {
	data := readFixture(t, "ed25519_enc")
	orig := append([]byte(nil), data...)
	p, err := Parse(data, security.FromString(fixturePass))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != FormatOpenSSH || p.OpenSSH == nil || p.Comment != "encrypted ed25519" {
		t.Fatalf("unexpected result %+v", p)
	}
	if !bytes.Equal(data, orig) {
		t.Fatalf("Parse modified its input")
	}
}

func TestParseFormatNames(t *testing.T) {
	for _, f := range []Format{FormatOpenSSH, FormatOpenSSHPublic, FormatPEM, FormatPKCS8, FormatEncryptedPKCS8, FormatPEMPublic, FormatRFC4716} {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Fatalf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("ppk"); keyerr.KindOf(err) != keyerr.InvalidArgument {
		t.Fatalf("unknown format: %v", err)
	}
}
