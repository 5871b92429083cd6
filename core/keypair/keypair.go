// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keypair is the main entry point of the library. A KeyPair holds one
// key of any supported family together with its comment and offers
// format-independent parsing, export, signing and fingerprinting.
package keypair

import (
	"crypto"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"

	"github.com/toeirei/sshkeys/core/encryption"
	"github.com/toeirei/sshkeys/core/fingerprint"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/core/sshkey"
)

// ExportOptions tune how new OpenSSH containers are encrypted.
type ExportOptions struct {
	Cipher string
	Rounds uint32
}

// KeyPair is a key plus its comment. It is not safe for concurrent mutation.
type KeyPair struct {
	key     keys.Variant
	comment string
	format  sshkey.Format
	// openssh remembers the container parameters of the source file so an
	// unchanged key is written back byte for byte.
	openssh *sshkey.OpenSSHParams
}

// FromBytes detects the format of data and decodes it.
func FromBytes(data []byte, passphrase security.Secret) (*KeyPair, error) {
	p, err := sshkey.Parse(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	return &KeyPair{key: p.Key, comment: p.Comment, format: p.Format, openssh: p.OpenSSH}, nil
}

// New wraps an existing variant.
func New(v keys.Variant, comment string) *KeyPair {
	return &KeyPair{key: v, comment: comment}
}

// Generate creates a new private key. See keys.Generate for bits.
func Generate(t keys.KeyType, bits int, comment string) (*KeyPair, error) {
	v, err := keys.Generate(t, bits)
	if err != nil {
		return nil, fmt.Errorf("generate %s key: %w", t, err)
	}
	return New(v, comment), nil
}

// Key returns the underlying variant.
func (k *KeyPair) Key() keys.Variant { return k.key }

// Type returns the key family.
func (k *KeyPair) Type() keys.KeyType { return k.key.Type() }

// Size returns the key size in bits.
func (k *KeyPair) Size() int { return k.key.Size() }

// Comment returns the comment carried with the key.
func (k *KeyPair) Comment() string { return k.comment }

// SourceFormat is the format the key was parsed from, FormatUnknown for
// generated keys.
func (k *KeyPair) SourceFormat() sshkey.Format { return k.format }

// SetComment changes the comment. The remembered salt is dropped so that a
// later encrypted export never reuses a keystream over different plaintext.
func (k *KeyPair) SetComment(c string) {
	if c == k.comment {
		return
	}
	k.comment = c
	if k.openssh != nil {
		p := *k.openssh
		p.Salt = nil
		k.openssh = &p
	}
}

// SetExportDefaults selects the cipher and KDF rounds for encrypted OpenSSH
// exports. Changing either discards the remembered salt.
func (k *KeyPair) SetExportDefaults(opts ExportOptions) error {
	if opts.Cipher != "" {
		if _, err := encryption.LookupCipher(opts.Cipher); err != nil {
			return err
		}
	}
	p := sshkey.OpenSSHParams{}
	if k.openssh != nil {
		p = *k.openssh
	}
	if opts.Cipher != "" && opts.Cipher != p.Cipher {
		p.Cipher = opts.Cipher
		p.Salt = nil
	}
	if opts.Rounds != 0 && opts.Rounds != p.Rounds {
		p.Rounds = opts.Rounds
		p.Salt = nil
	}
	k.openssh = &p
	return nil
}

// HasPrivate reports whether the key can sign.
func (k *KeyPair) HasPrivate() bool { return keys.HasPrivate(k.key) }

func (k *KeyPair) private(op string) (keys.PrivateParts, error) {
	p, ok := k.key.(keys.PrivateParts)
	if !ok {
		return nil, keyerr.New(keyerr.MissingPrivateKey, op, "%s key has no private half", k.key.Name())
	}
	return p, nil
}

// PublicKeyPair returns a public-only copy.
func (k *KeyPair) PublicKeyPair() *KeyPair {
	v := k.key
	if p, ok := v.(keys.PrivateParts); ok {
		v = p.PublicOnly()
	}
	return &KeyPair{key: v, comment: k.comment}
}

// Equal compares the public halves.
func (k *KeyPair) Equal(other *KeyPair) bool {
	return other != nil && k.key.Equal(other.key)
}

// WithRSAHash returns a copy whose RSA signatures use h (SHA-1, SHA-256 or
// SHA-512).
func (k *KeyPair) WithRSAHash(h crypto.Hash) (*KeyPair, error) {
	out := *k
	switch v := k.key.(type) {
	case *keys.RSAPrivateKey:
		c := *v
		c.Hash = h
		out.key = &c
		_, err := c.SignatureHash()
		if err != nil {
			return nil, err
		}
	case *keys.RSAPublicKey:
		c := *v
		c.Hash = h
		out.key = &c
		_, err := c.SignatureHash()
		if err != nil {
			return nil, err
		}
	default:
		return nil, keyerr.New(keyerr.InvalidArgument, "keypair.WithRSAHash", "%s key has no selectable hash", k.key.Name())
	}
	return &out, nil
}

// PublicString renders the OpenSSH public key line.
func (k *KeyPair) PublicString() string {
	return sshkey.MarshalPublicLine(k.key, k.comment)
}

// PrivateString renders the key as an OpenSSH private key, encrypted when
// passphrase is not empty.
func (k *KeyPair) PrivateString(passphrase security.Secret) (string, error) {
	p, err := k.private("keypair.PrivateString")
	if err != nil {
		return "", err
	}
	out, err := sshkey.MarshalOpenSSH(p, k.comment, passphrase, k.openssh)
	if err != nil {
		return "", fmt.Errorf("marshal openssh key: %w", err)
	}
	return string(out), nil
}

// Export writes the key in the requested format. Private formats need a
// private key; FormatEncryptedPKCS8 needs a passphrase.
func (k *KeyPair) Export(format sshkey.Format, passphrase security.Secret) ([]byte, error) {
	switch format {
	case sshkey.FormatOpenSSHPublic:
		return []byte(k.PublicString()), nil
	case sshkey.FormatRFC4716:
		return []byte(sshkey.MarshalRFC4716(k.key, k.comment)), nil
	case sshkey.FormatPEMPublic:
		return sshkey.MarshalPEMPublic(k.key)
	}

	p, err := k.private("keypair.Export")
	if err != nil {
		return nil, err
	}
	switch format {
	case sshkey.FormatOpenSSH:
		return sshkey.MarshalOpenSSH(p, k.comment, passphrase, k.openssh)
	case sshkey.FormatPEM:
		return sshkey.MarshalPEM(p, passphrase)
	case sshkey.FormatPKCS8:
		return sshkey.MarshalPKCS8(p, passphrase)
	case sshkey.FormatEncryptedPKCS8:
		if passphrase.Empty() {
			return nil, keyerr.New(keyerr.InvalidArgument, "keypair.Export", "encrypted PKCS#8 needs a passphrase")
		}
		return sshkey.MarshalPKCS8(p, passphrase)
	}
	return nil, keyerr.New(keyerr.InvalidArgument, "keypair.Export", "cannot export to %s", format)
}

// Sign returns a raw signature over msg.
func (k *KeyPair) Sign(msg []byte) ([]byte, error) {
	s, ok := k.key.(keys.Signer)
	if !ok {
		return nil, keyerr.New(keyerr.MissingPrivateKey, "keypair.Sign", "%s key has no private half", k.key.Name())
	}
	return s.Sign(msg)
}

// Verify checks a raw signature over msg.
func (k *KeyPair) Verify(msg, sig []byte) (bool, error) {
	return k.key.Verify(msg, sig)
}

// Fingerprint hashes the public key blob.
func (k *KeyPair) Fingerprint(kind fingerprint.HashKind) (fingerprint.Digest, error) {
	return fingerprint.Compute(sshkey.MarshalPublicBlob(k.key), kind)
}

// RandomArt renders the ssh-keygen style randomart for the fingerprint.
func (k *KeyPair) RandomArt(kind fingerprint.HashKind) (string, error) {
	d, err := k.Fingerprint(kind)
	if err != nil {
		return "", err
	}
	return d.Art(k.Type().String(), k.Size()), nil
}

// SSHPublicKey converts the key for use with golang.org/x/crypto/ssh.
func (k *KeyPair) SSHPublicKey() (ssh.PublicKey, error) {
	pub, err := keys.CryptoPublicKey(k.key)
	if err != nil {
		return nil, err
	}
	return ssh.NewPublicKey(pub)
}

// SSHSigner converts the key into an ssh.Signer. RSA signers are restricted
// to the algorithm matching the selected hash.
func (k *KeyPair) SSHSigner() (ssh.Signer, error) {
	priv, err := k.CryptoPrivateKey()
	if err != nil {
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "keypair.SSHSigner", err)
	}
	if v, ok := k.key.(*keys.RSAPrivateKey); ok {
		as, ok := signer.(ssh.AlgorithmSigner)
		if !ok {
			return signer, nil
		}
		ms, err := ssh.NewSignerWithAlgorithms(as, []string{v.SignatureAlgorithm()})
		if err != nil {
			return nil, keyerr.Wrap(keyerr.BackendFailure, "keypair.SSHSigner", err)
		}
		return rsaSigner{MultiAlgorithmSigner: ms, algo: v.SignatureAlgorithm()}, nil
	}
	return signer, nil
}

// rsaSigner makes plain Sign use the selected RSA algorithm instead of the
// legacy ssh-rsa default.
type rsaSigner struct {
	ssh.MultiAlgorithmSigner
	algo string
}

func (s rsaSigner) Sign(rand io.Reader, data []byte) (*ssh.Signature, error) {
	return s.SignWithAlgorithm(rand, data, s.algo)
}

// CryptoPrivateKey returns the Go standard library private key.
func (k *KeyPair) CryptoPrivateKey() (crypto.PrivateKey, error) {
	if _, err := k.private("keypair.CryptoPrivateKey"); err != nil {
		return nil, err
	}
	return keys.ToCrypto(k.key)
}
