// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// ECDSAPublic decodes an uncompressed SEC1 point and checks that it lies on
// the curve.
func ECDSAPublic(c Curve, point []byte) (*ecdsa.PublicKey, error) {
	ec := c.Elliptic()
	if ec == nil {
		return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "backend.ECDSAPublic", "unsupported curve %q", c)
	}
	x, y := elliptic.Unmarshal(ec, point) //nolint:staticcheck // on-curve check for raw wire points
	if x == nil {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.ECDSAPublic", "invalid point for %s", c)
	}
	return &ecdsa.PublicKey{Curve: ec, X: x, Y: y}, nil
}

// ECDSAPrivate builds a Go private key and checks that d matches the point.
func ECDSAPrivate(c Curve, point []byte, d *big.Int) (*ecdsa.PrivateKey, error) {
	pub, err := ECDSAPublic(c, point)
	if err != nil {
		return nil, err
	}
	n := pub.Curve.Params().N
	if d == nil || d.Sign() <= 0 || d.Cmp(n) >= 0 {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.ECDSAPrivate", "private scalar out of range")
	}
	x, y := pub.Curve.ScalarBaseMult(d.Bytes()) //nolint:staticcheck // consistency check only
	if x.Cmp(pub.X) != 0 || y.Cmp(pub.Y) != 0 {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.ECDSAPrivate", "private scalar does not match public point")
	}
	return &ecdsa.PrivateKey{PublicKey: *pub, D: new(big.Int).Set(d)}, nil
}

// ECDSAPoint encodes a Go public key as an uncompressed point.
func ECDSAPoint(pub *ecdsa.PublicKey) []byte {
	return elliptic.Marshal(pub.Curve, pub.X, pub.Y) //nolint:staticcheck // wire format is uncompressed SEC1
}

// CurveOf maps a Go curve back to its OpenSSH identifier.
func CurveOf(ec elliptic.Curve) (Curve, error) {
	for _, c := range Curves {
		if c.Elliptic().Params().Name == ec.Params().Name {
			return c, nil
		}
	}
	return "", keyerr.New(keyerr.UnsupportedAlgorithm, "backend.CurveOf", "unsupported curve %s", ec.Params().Name)
}

// ECDSASign signs msg with the curve's hash and returns r and s.
func ECDSASign(c Curve, point []byte, d *big.Int, msg []byte) (r, s *big.Int, err error) {
	k, err := ECDSAPrivate(c, point, d)
	if err != nil {
		return nil, nil, err
	}
	digest, err := Sum(c.Hash(), msg)
	if err != nil {
		return nil, nil, err
	}
	r, s, err = ecdsa.Sign(rand.Reader, k, digest)
	if err != nil {
		return nil, nil, keyerr.Wrap(keyerr.BackendFailure, "backend.ECDSASign", err)
	}
	return r, s, nil
}

// ECDSAVerify checks r and s over msg.
func ECDSAVerify(c Curve, point []byte, msg []byte, r, s *big.Int) (bool, error) {
	pub, err := ECDSAPublic(c, point)
	if err != nil {
		return false, err
	}
	digest, err := Sum(c.Hash(), msg)
	if err != nil {
		return false, err
	}
	return ecdsa.Verify(pub, digest, r, s), nil
}

// GenerateECDSA creates a key on c and returns its point and scalar.
func GenerateECDSA(c Curve) (point []byte, d *big.Int, err error) {
	ec := c.Elliptic()
	if ec == nil {
		return nil, nil, keyerr.New(keyerr.BackendFailure, "backend.GenerateECDSA", "unsupported curve %q", c)
	}
	k, err := ecdsa.GenerateKey(ec, rand.Reader)
	if err != nil {
		return nil, nil, keyerr.Wrap(keyerr.BackendFailure, "backend.GenerateECDSA", err)
	}
	return ECDSAPoint(&k.PublicKey), k.D, nil
}
