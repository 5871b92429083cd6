// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package encryption

import (
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/internal/logging"
)

// Params names the cipher and KDF of a container together with the KDF
// options. None of it is secret.
type Params struct {
	Cipher  string
	KDF     string
	Options KDFOptions
}

// Encrypted reports whether the params describe a protected section.
func (p Params) Encrypted() bool { return p.Cipher != CipherNone }

// Validate checks that the cipher/KDF pair is consistent and supported.
func (p Params) Validate() error {
	if p.Cipher == CipherNone {
		if p.KDF != KDFNone {
			return keyerr.New(keyerr.MalformedEncoding, "encryption.Params", "cipher none with kdf %q", p.KDF)
		}
		return nil
	}
	if _, err := LookupCipher(p.Cipher); err != nil {
		return err
	}
	if p.KDF != KDFBcrypt {
		if p.KDF == KDFNone {
			return keyerr.New(keyerr.MalformedEncoding, "encryption.Params", "cipher %q without a kdf", p.Cipher)
		}
		return keyerr.New(keyerr.UnsupportedCipher, "encryption.Params", "kdf %q", p.KDF)
	}
	return nil
}

// BlockSize is the padding block of the section described by p.
func (p Params) BlockSize() (int, error) { return BlockSizeOf(p.Cipher) }

// derive splits bcrypt-pbkdf output into key and IV for p's cipher and
// hands them to fn. The material is zeroed when fn returns.
func (p Params) derive(passphrase security.Secret, fn func(c *Cipher, key, iv []byte) error) error {
	c, err := LookupCipher(p.Cipher)
	if err != nil {
		return err
	}
	material, err := DeriveKey(passphrase, p.Options.Salt, p.Options.Rounds, c.KeyLen+c.IVLen)
	if err != nil {
		return err
	}
	defer material.Zero()
	return material.Use(func(m []byte) error {
		return fn(c, m[:c.KeyLen], m[c.KeyLen:])
	})
}

// Decrypt returns the plaintext private section. An unencrypted section is
// returned as a copy. The caller zeroes the result.
func Decrypt(p Params, passphrase security.Secret, ciphertext []byte) (security.Secret, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.Encrypted() {
		return security.FromBytes(ciphertext), nil
	}
	if passphrase.Empty() {
		return nil, keyerr.New(keyerr.PassphraseRequired, "encryption.Decrypt", "key is encrypted with %s", p.Cipher)
	}
	logging.Debugf("decrypting private section: cipher=%s kdf=%s rounds=%d", p.Cipher, p.KDF, p.Options.Rounds)
	var plain []byte
	err := p.derive(passphrase, func(c *Cipher, key, iv []byte) error {
		var err error
		plain, err = c.Decrypt(key, iv, ciphertext)
		return err
	})
	if err != nil {
		return nil, err
	}
	return security.Secret(plain), nil
}

// Encrypt enciphers a padded private section.
func Encrypt(p Params, passphrase security.Secret, plaintext []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.Encrypted() {
		return append([]byte(nil), plaintext...), nil
	}
	if passphrase.Empty() {
		return nil, keyerr.New(keyerr.PassphraseRequired, "encryption.Encrypt", "no passphrase for %s", p.Cipher)
	}
	var out []byte
	err := p.derive(passphrase, func(c *Cipher, key, iv []byte) error {
		var err error
		out, err = c.Encrypt(key, iv, plaintext)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
