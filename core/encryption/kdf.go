// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package encryption

import (
	"crypto/rand"

	"github.com/dchest/bcrypt_pbkdf"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/core/wire"
)

const (
	KDFNone   = "none"
	KDFBcrypt = "bcrypt"

	// DefaultRounds and SaltSize match ssh-keygen.
	DefaultRounds = 16
	SaltSize      = 16
)

// KDFOptions is the decoded kdfoptions blob of a bcrypt-protected key.
type KDFOptions struct {
	Salt   []byte
	Rounds uint32
}

// ParseKDFOptions decodes the options blob for kdfName. The none KDF must
// carry an empty blob.
func ParseKDFOptions(kdfName string, blob []byte) (KDFOptions, error) {
	switch kdfName {
	case KDFNone:
		if len(blob) != 0 {
			return KDFOptions{}, keyerr.New(keyerr.MalformedEncoding, "encryption.ParseKDFOptions", "none KDF with %d option bytes", len(blob))
		}
		return KDFOptions{}, nil
	case KDFBcrypt:
		r := wire.NewReader(blob)
		salt, err := r.ReadString()
		if err != nil {
			return KDFOptions{}, err
		}
		rounds, err := r.ReadUint32()
		if err != nil {
			return KDFOptions{}, err
		}
		if err := r.ExpectEnd("encryption.ParseKDFOptions"); err != nil {
			return KDFOptions{}, err
		}
		if rounds == 0 {
			return KDFOptions{}, keyerr.New(keyerr.MalformedEncoding, "encryption.ParseKDFOptions", "zero bcrypt rounds")
		}
		return KDFOptions{Salt: append([]byte(nil), salt...), Rounds: rounds}, nil
	}
	return KDFOptions{}, keyerr.New(keyerr.UnsupportedCipher, "encryption.ParseKDFOptions", "kdf %q", kdfName)
}

// Marshal encodes the options blob; the none KDF has an empty blob.
func (o KDFOptions) Marshal(kdfName string) []byte {
	if kdfName != KDFBcrypt {
		return nil
	}
	w := wire.NewWriter()
	w.PutString(o.Salt)
	w.PutUint32(o.Rounds)
	return w.Bytes()
}

// NewKDFOptions draws a fresh salt. Zero rounds selects DefaultRounds.
func NewKDFOptions(rounds uint32) (KDFOptions, error) {
	if rounds == 0 {
		rounds = DefaultRounds
	}
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return KDFOptions{}, keyerr.Wrap(keyerr.BackendFailure, "encryption.NewKDFOptions", err)
	}
	return KDFOptions{Salt: salt, Rounds: rounds}, nil
}

// DeriveKey runs bcrypt-pbkdf. The caller owns and must zero the result.
func DeriveKey(passphrase security.Secret, salt []byte, rounds uint32, n int) (security.Secret, error) {
	if passphrase.Empty() {
		return nil, keyerr.New(keyerr.PassphraseRequired, "encryption.DeriveKey", "empty passphrase")
	}
	var out []byte
	err := passphrase.Use(func(p []byte) error {
		var err error
		out, err = bcrypt_pbkdf.Key(p, salt, int(rounds), n)
		return err
	})
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "encryption.DeriveKey", err)
	}
	return security.Secret(out), nil
}
