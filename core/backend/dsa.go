// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // ssh-dss keys still exist in the wild
	"crypto/rand"
	"math/big"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// DSAFields are the raw DSA numbers. X is nil for a public key.
type DSAFields struct {
	P, Q, G, Y *big.Int
	X          *big.Int
}

// DSAPublic builds a Go public key.
func DSAPublic(f DSAFields) (*dsa.PublicKey, error) {
	for _, v := range []*big.Int{f.P, f.Q, f.G, f.Y} {
		if v == nil || v.Sign() <= 0 {
			return nil, keyerr.New(keyerr.BackendFailure, "backend.DSAPublic", "DSA parameters must be positive")
		}
	}
	return &dsa.PublicKey{
		Parameters: dsa.Parameters{P: f.P, Q: f.Q, G: f.G},
		Y:          f.Y,
	}, nil
}

// DSAPrivate builds a Go private key.
func DSAPrivate(f DSAFields) (*dsa.PrivateKey, error) {
	pub, err := DSAPublic(f)
	if err != nil {
		return nil, err
	}
	if f.X == nil || f.X.Sign() <= 0 || f.X.Cmp(f.Q) >= 0 {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.DSAPrivate", "private value out of range")
	}
	return &dsa.PrivateKey{PublicKey: *pub, X: f.X}, nil
}

// DSASignatureSize is the width of one signature component for q.
func DSASignatureSize(q *big.Int) int { return (q.BitLen() + 7) / 8 }

// DSASign signs the SHA-1 digest of msg and returns r and s.
func DSASign(f DSAFields, msg []byte) (r, s *big.Int, err error) {
	k, err := DSAPrivate(f)
	if err != nil {
		return nil, nil, err
	}
	digest, err := Sum(crypto.SHA1, msg)
	if err != nil {
		return nil, nil, err
	}
	r, s, err = dsa.Sign(rand.Reader, k, digest)
	if err != nil {
		return nil, nil, keyerr.Wrap(keyerr.BackendFailure, "backend.DSASign", err)
	}
	return r, s, nil
}

// DSAVerify checks r and s against the SHA-1 digest of msg.
func DSAVerify(f DSAFields, msg []byte, r, s *big.Int) (bool, error) {
	pub, err := DSAPublic(f)
	if err != nil {
		return false, err
	}
	digest, err := Sum(crypto.SHA1, msg)
	if err != nil {
		return false, err
	}
	return dsa.Verify(pub, digest, r, s), nil
}

// GenerateDSA creates a 1024-bit key, the only size OpenSSH accepts.
func GenerateDSA(bits int) (DSAFields, error) {
	if bits != 0 && bits != 1024 {
		return DSAFields{}, keyerr.New(keyerr.BackendFailure, "backend.GenerateDSA", "DSA keys must be 1024 bits, got %d", bits)
	}
	var k dsa.PrivateKey
	if err := dsa.GenerateParameters(&k.Parameters, rand.Reader, dsa.L1024N160); err != nil {
		return DSAFields{}, keyerr.Wrap(keyerr.BackendFailure, "backend.GenerateDSA", err)
	}
	if err := dsa.GenerateKey(&k, rand.Reader); err != nil {
		return DSAFields{}, keyerr.Wrap(keyerr.BackendFailure, "backend.GenerateDSA", err)
	}
	return DSAFields{P: k.P, Q: k.Q, G: k.G, Y: k.Y, X: k.X}, nil
}
