// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"math/big"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// RSAFields are the raw RSA numbers. D, P, Q and Iqmp are nil for a public key.
type RSAFields struct {
	E, N          *big.Int
	D, P, Q, Iqmp *big.Int
}

// RSAPublic builds a Go public key from e and n.
func RSAPublic(e, n *big.Int) (*rsa.PublicKey, error) {
	if n == nil || n.Sign() <= 0 || e == nil || e.Sign() <= 0 {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.RSAPublic", "modulus and exponent must be positive")
	}
	if !e.IsInt64() || e.Int64() > 1<<31-1 {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.RSAPublic", "public exponent too large")
	}
	return &rsa.PublicKey{N: new(big.Int).Set(n), E: int(e.Int64())}, nil
}

// RSAPrivate builds and validates a Go private key from raw fields.
func RSAPrivate(f RSAFields) (*rsa.PrivateKey, error) {
	pub, err := RSAPublic(f.E, f.N)
	if err != nil {
		return nil, err
	}
	if f.D == nil || f.P == nil || f.Q == nil {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.RSAPrivate", "incomplete private key")
	}
	k := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         new(big.Int).Set(f.D),
		Primes:    []*big.Int{new(big.Int).Set(f.P), new(big.Int).Set(f.Q)},
	}
	if err := k.Validate(); err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "backend.RSAPrivate", err)
	}
	k.Precompute()
	return k, nil
}

// RSAFieldsOf extracts raw fields from a Go key. Only two-prime keys are
// representable in the OpenSSH format.
func RSAFieldsOf(k *rsa.PrivateKey) (RSAFields, error) {
	if len(k.Primes) != 2 {
		return RSAFields{}, keyerr.New(keyerr.UnsupportedAlgorithm, "backend.RSAFieldsOf", "multi-prime RSA keys are not supported")
	}
	p, q := k.Primes[0], k.Primes[1]
	return RSAFields{
		E:    big.NewInt(int64(k.E)),
		N:    new(big.Int).Set(k.N),
		D:    new(big.Int).Set(k.D),
		P:    new(big.Int).Set(p),
		Q:    new(big.Int).Set(q),
		Iqmp: new(big.Int).ModInverse(q, p),
	}, nil
}

// RSASign produces a PKCS#1 v1.5 signature over the h-digest of msg.
func RSASign(f RSAFields, h crypto.Hash, msg []byte) ([]byte, error) {
	k, err := RSAPrivate(f)
	if err != nil {
		return nil, err
	}
	digest, err := Sum(h, msg)
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, k, h, digest)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "backend.RSASign", err)
	}
	return sig, nil
}

// RSAVerify checks a PKCS#1 v1.5 signature. sig must already have the
// modulus length; a mismatch is reported as false, never as an error.
func RSAVerify(e, n *big.Int, h crypto.Hash, msg, sig []byte) (bool, error) {
	pub, err := RSAPublic(e, n)
	if err != nil {
		return false, err
	}
	digest, err := Sum(h, msg)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(pub, h, digest, sig) == nil, nil
}

// GenerateRSA creates a two-prime key of the given size.
func GenerateRSA(bits int) (RSAFields, error) {
	if bits < 1024 {
		return RSAFields{}, keyerr.New(keyerr.BackendFailure, "backend.GenerateRSA", "RSA keys must be at least 1024 bits, got %d", bits)
	}
	k, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return RSAFields{}, keyerr.Wrap(keyerr.BackendFailure, "backend.GenerateRSA", err)
	}
	return RSAFieldsOf(k)
}
