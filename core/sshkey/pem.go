// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"math/big"

	"github.com/youmark/pkcs8"
	"golang.org/x/crypto/ssh"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/internal/logging"
)

// PEM block types.
const (
	pemRSAPrivate       = "RSA PRIVATE KEY"
	pemECPrivate        = "EC PRIVATE KEY"
	pemDSAPrivate       = "DSA PRIVATE KEY"
	pemPKCS8            = "PRIVATE KEY"
	pemEncryptedPKCS8   = "ENCRYPTED PRIVATE KEY"
	pemPublic           = "PUBLIC KEY"
	pemRSAPublic        = "RSA PUBLIC KEY"
	legacyEncryptHeader = "Proc-Type"

	pemBegin = "-----BEGIN "
)

// dsaOpenSSL is the ASN.1 layout OpenSSL uses for "DSA PRIVATE KEY".
type dsaOpenSSL struct {
	Version int
	P, Q, G *big.Int
	Y, X    *big.Int
}

func decodePEM(data []byte, op string) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, op, "no PEM block found")
	}
	return block, nil
}

// ParsePEM decodes the first PEM block of data: a traditional, PKCS#8 or
// encrypted PKCS#8 private key, or a PKIX / PKCS#1 public key.
func ParsePEM(data []byte, passphrase security.Secret) (keys.Variant, error) {
	block, err := decodePEM(data, "sshkey.ParsePEM")
	if err != nil {
		return nil, err
	}
	logging.Debugf("pem block %q", block.Type)

	switch block.Type {
	case pemRSAPrivate, pemECPrivate, pemDSAPrivate:
		return parseTraditional(block, passphrase)
	case pemPKCS8:
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, keyerr.Wrap(keyerr.MalformedEncoding, "sshkey.ParsePEM", err)
		}
		return keys.FromCrypto(k)
	case pemEncryptedPKCS8:
		if passphrase.Empty() {
			return nil, keyerr.New(keyerr.PassphraseRequired, "sshkey.ParsePEM", "encrypted PKCS#8 key")
		}
		var k any
		err := passphrase.Use(func(p []byte) error {
			var err error
			k, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, p)
			return err
		})
		if err != nil {
			return nil, keyerr.Wrap(keyerr.IncorrectPassphraseOrCorruptKey, "sshkey.ParsePEM", err)
		}
		return keys.FromCrypto(k)
	case pemPublic:
		k, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, keyerr.Wrap(keyerr.MalformedEncoding, "sshkey.ParsePEM", err)
		}
		return keys.FromCrypto(k)
	case pemRSAPublic:
		k, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, keyerr.Wrap(keyerr.MalformedEncoding, "sshkey.ParsePEM", err)
		}
		return keys.FromCrypto(k)
	}
	return nil, keyerr.New(keyerr.UnrecognizedFormat, "sshkey.ParsePEM", "PEM block type %q", block.Type)
}

func parseTraditional(block *pem.Block, passphrase security.Secret) (keys.Variant, error) {
	der := block.Bytes
	encrypted := x509.IsEncryptedPEMBlock(block) //nolint:staticcheck // legacy DEK-Info keys are still produced by openssl
	if encrypted {
		if passphrase.Empty() {
			return nil, keyerr.New(keyerr.PassphraseRequired, "sshkey.ParsePEM", "encrypted %s", block.Type)
		}
		err := passphrase.Use(func(p []byte) error {
			var err error
			der, err = x509.DecryptPEMBlock(block, p) //nolint:staticcheck // see above
			return err
		})
		if err != nil {
			return nil, keyerr.Wrap(keyerr.IncorrectPassphraseOrCorruptKey, "sshkey.ParsePEM", err)
		}
		defer security.Wipe(der)
	}

	var k any
	var err error
	switch block.Type {
	case pemRSAPrivate:
		k, err = x509.ParsePKCS1PrivateKey(der)
	case pemECPrivate:
		k, err = x509.ParseECPrivateKey(der)
	case pemDSAPrivate:
		k, err = ssh.ParseDSAPrivateKey(der)
	}
	if err != nil {
		kind := keyerr.MalformedEncoding
		if encrypted {
			kind = keyerr.IncorrectPassphraseOrCorruptKey
		}
		return nil, keyerr.Wrap(kind, "sshkey.ParsePEM", err)
	}
	return keys.FromCrypto(k)
}

// MarshalPEM writes v in its traditional PEM form (PKCS#1, SEC1 or the
// OpenSSL DSA layout). A non-empty passphrase applies legacy AES-128-CBC
// PEM encryption. Ed25519 has no traditional form and is written as PKCS#8.
func MarshalPEM(v keys.PrivateParts, passphrase security.Secret) ([]byte, error) {
	if v.Type() == keys.Ed25519 {
		return MarshalPKCS8(v, passphrase)
	}
	block, err := traditionalBlock(v)
	if err != nil {
		return nil, err
	}
	defer security.Wipe(block.Bytes)
	if passphrase.Empty() {
		return pem.EncodeToMemory(block), nil
	}
	var enc *pem.Block
	err = passphrase.Use(func(p []byte) error {
		var err error
		enc, err = x509.EncryptPEMBlock(rand.Reader, block.Type, block.Bytes, p, x509.PEMCipherAES128) //nolint:staticcheck // legacy format on request
		return err
	})
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "sshkey.MarshalPEM", err)
	}
	return pem.EncodeToMemory(enc), nil
}

func traditionalBlock(v keys.PrivateParts) (*pem.Block, error) {
	switch k := v.(type) {
	case *keys.RSAPrivateKey:
		priv, err := keys.ToCrypto(k)
		if err != nil {
			return nil, err
		}
		return &pem.Block{Type: pemRSAPrivate, Bytes: x509.MarshalPKCS1PrivateKey(priv.(*rsa.PrivateKey))}, nil
	case *keys.ECDSAPrivateKey:
		priv, err := keys.ToCrypto(k)
		if err != nil {
			return nil, err
		}
		der, err := x509.MarshalECPrivateKey(priv.(*ecdsa.PrivateKey))
		if err != nil {
			return nil, keyerr.Wrap(keyerr.BackendFailure, "sshkey.MarshalPEM", err)
		}
		return &pem.Block{Type: pemECPrivate, Bytes: der}, nil
	case *keys.DSAPrivateKey:
		der, err := asn1.Marshal(dsaOpenSSL{P: k.P, Q: k.Q, G: k.G, Y: k.Y, X: k.X})
		if err != nil {
			return nil, keyerr.Wrap(keyerr.BackendFailure, "sshkey.MarshalPEM", err)
		}
		return &pem.Block{Type: pemDSAPrivate, Bytes: der}, nil
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "sshkey.MarshalPEM", "no traditional PEM form for %s", v.Name())
}

// MarshalPKCS8 writes v as PKCS#8, encrypted with PBES2 when passphrase is
// not empty. DSA keys have no PKCS#8 encoder.
func MarshalPKCS8(v keys.PrivateParts, passphrase security.Secret) ([]byte, error) {
	if v.Type() == keys.DSA {
		return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "sshkey.MarshalPKCS8", "PKCS#8 export of DSA keys")
	}
	priv, err := keys.ToCrypto(v.(keys.Variant))
	if err != nil {
		return nil, err
	}
	var der []byte
	err = passphrase.Use(func(p []byte) error {
		var err error
		der, err = pkcs8.MarshalPrivateKey(priv, p, nil)
		return err
	})
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "sshkey.MarshalPKCS8", err)
	}
	defer security.Wipe(der)
	typ := pemPKCS8
	if !passphrase.Empty() {
		typ = pemEncryptedPKCS8
	}
	return pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der}), nil
}

// MarshalPEMPublic writes the public half of v. RSA keys use the PKCS#1
// "RSA PUBLIC KEY" block, ECDSA and Ed25519 use PKIX "PUBLIC KEY".
func MarshalPEMPublic(v keys.PublicParts) ([]byte, error) {
	pub, err := keys.CryptoPublicKey(v)
	if err != nil {
		return nil, err
	}
	switch v.Type() {
	case keys.RSA:
		return pem.EncodeToMemory(&pem.Block{Type: pemRSAPublic, Bytes: x509.MarshalPKCS1PublicKey(pub.(*rsa.PublicKey))}), nil
	case keys.DSA:
		return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "sshkey.MarshalPEMPublic", "PEM export of DSA public keys")
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "sshkey.MarshalPEMPublic", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPublic, Bytes: der}), nil
}
