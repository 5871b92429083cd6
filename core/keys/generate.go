// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/internal/logging"
)

// Default sizes used when Generate is called with bits == 0.
const (
	DefaultRSABits   = 3072
	DefaultECDSABits = 256
)

// Generate creates a new private key. bits selects the RSA modulus size or
// the ECDSA curve; it must be 0 or 1024 for DSA and is ignored for Ed25519.
func Generate(t KeyType, bits int) (Variant, error) {
	logging.Debugf("generating %s key (bits=%d)", t, bits)
	switch t {
	case RSA:
		if bits == 0 {
			bits = DefaultRSABits
		}
		f, err := backend.GenerateRSA(bits)
		if err != nil {
			return nil, err
		}
		return &RSAPrivateKey{
			RSAPublicKey: RSAPublicKey{E: f.E, N: f.N},
			D:            f.D,
			Iqmp:         f.Iqmp,
			P:            f.P,
			Q:            f.Q,
		}, nil
	case DSA:
		f, err := backend.GenerateDSA(bits)
		if err != nil {
			return nil, err
		}
		return &DSAPrivateKey{DSAPublicKey: DSAPublicKey{P: f.P, Q: f.Q, G: f.G, Y: f.Y}, X: f.X}, nil
	case ECDSA:
		if bits == 0 {
			bits = DefaultECDSABits
		}
		c, err := backend.CurveForBits(bits)
		if err != nil {
			return nil, err
		}
		point, d, err := backend.GenerateECDSA(c)
		if err != nil {
			return nil, err
		}
		return &ECDSAPrivateKey{ECDSAPublicKey: ECDSAPublicKey{Curve: c, Point: point}, D: d}, nil
	case Ed25519:
		seed, pub, err := backend.GenerateEd25519()
		if err != nil {
			return nil, err
		}
		return &Ed25519PrivateKey{Ed25519PublicKey: Ed25519PublicKey{PublicBytes: pub}, Seed: seed}, nil
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.Generate", "key type %v", t)
}
