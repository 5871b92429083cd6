// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // ssh-dss interop
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"math/big"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
)

// FromCrypto converts a Go standard library key, public or private, into a
// variant. Both value and pointer forms of ed25519 keys are accepted.
func FromCrypto(k any) (Variant, error) {
	switch key := k.(type) {
	case *rsa.PrivateKey:
		f, err := backend.RSAFieldsOf(key)
		if err != nil {
			return nil, err
		}
		return newRSAPrivate(f)
	case *rsa.PublicKey:
		return newRSAPublic(big.NewInt(int64(key.E)), key.N)
	case *dsa.PrivateKey:
		return newDSAPrivate(backend.DSAFields{P: key.P, Q: key.Q, G: key.G, Y: key.Y, X: key.X})
	case *dsa.PublicKey:
		return newDSAPublic(backend.DSAFields{P: key.P, Q: key.Q, G: key.G, Y: key.Y})
	case *ecdsa.PrivateKey:
		c, err := backend.CurveOf(key.Curve)
		if err != nil {
			return nil, err
		}
		return newECDSAPrivate(c, backend.ECDSAPoint(&key.PublicKey), key.D)
	case *ecdsa.PublicKey:
		c, err := backend.CurveOf(key.Curve)
		if err != nil {
			return nil, err
		}
		return newECDSAPublic(c, backend.ECDSAPoint(key))
	case ed25519.PrivateKey:
		if len(key) != ed25519.PrivateKeySize {
			return nil, keyerr.New(keyerr.MalformedEncoding, "keys.FromCrypto", "ed25519 private key is %d bytes", len(key))
		}
		return newEd25519Private(key.Seed(), key[ed25519.SeedSize:])
	case *ed25519.PrivateKey:
		return FromCrypto(*key)
	case ed25519.PublicKey:
		return newEd25519Public(key)
	case *ed25519.PublicKey:
		return newEd25519Public(*key)
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.FromCrypto", "unsupported key type %T", k)
}

// ToCrypto returns the Go standard library form of v: a private key type for
// private variants, a public key type otherwise.
func ToCrypto(v Variant) (any, error) {
	switch k := v.(type) {
	case *RSAPrivateKey:
		return backend.RSAPrivate(k.fields())
	case *DSAPrivateKey:
		f := k.fields()
		f.X = k.X
		return backend.DSAPrivate(f)
	case *ECDSAPrivateKey:
		return backend.ECDSAPrivate(k.Curve, k.Point, k.D)
	case *Ed25519PrivateKey:
		return backend.Ed25519Private(k.Seed, k.PublicBytes)
	}
	return CryptoPublicKey(v)
}

// CryptoPublicKey returns the Go standard library public key of v.
func CryptoPublicKey(v PublicParts) (crypto.PublicKey, error) {
	switch k := v.(type) {
	case *RSAPublicKey:
		return backend.RSAPublic(k.E, k.N)
	case *RSAPrivateKey:
		return backend.RSAPublic(k.E, k.N)
	case *DSAPublicKey:
		return backend.DSAPublic(k.fields())
	case *DSAPrivateKey:
		return backend.DSAPublic(k.fields())
	case *ECDSAPublicKey:
		return backend.ECDSAPublic(k.Curve, k.Point)
	case *ECDSAPrivateKey:
		return backend.ECDSAPublic(k.Curve, k.Point)
	case *Ed25519PublicKey:
		return ed25519.PublicKey(append([]byte(nil), k.PublicBytes...)), nil
	case *Ed25519PrivateKey:
		return ed25519.PublicKey(append([]byte(nil), k.PublicBytes...)), nil
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.CryptoPublicKey", "unsupported variant %T", v)
}
