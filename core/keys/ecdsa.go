// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"bytes"
	"math/big"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/wire"
)

// ECDSAPublicKey is an ecdsa-sha2-* public key. Point is the uncompressed
// SEC1 encoding.
type ECDSAPublicKey struct {
	Curve backend.Curve
	Point []byte
}

// ECDSAPrivateKey is an ECDSA key with its private scalar.
type ECDSAPrivateKey struct {
	ECDSAPublicKey
	D *big.Int
}

func (*ECDSAPublicKey) variant() {}

func (*ECDSAPublicKey) Type() KeyType  { return ECDSA }
func (k *ECDSAPublicKey) Name() string { return ecdsaPrefix + string(k.Curve) }
func (k *ECDSAPublicKey) Size() int    { return k.Curve.Bits() }

func (k *ECDSAPublicKey) MarshalPublic(w *wire.Writer) {
	w.PutText(string(k.Curve))
	w.PutString(k.Point)
}

func (k *ECDSAPublicKey) Equal(other PublicParts) bool {
	var o *ECDSAPublicKey
	switch v := other.(type) {
	case *ECDSAPublicKey:
		o = v
	case *ECDSAPrivateKey:
		o = &v.ECDSAPublicKey
	default:
		return false
	}
	return k.Curve == o.Curve && bytes.Equal(k.Point, o.Point)
}

// Verify checks a raw r||s signature, each half padded to the curve size.
func (k *ECDSAPublicKey) Verify(msg, sig []byte) (bool, error) {
	if want := 2 * k.Curve.ScalarSize(); len(sig) != want {
		return false, invalidSig("keys.ECDSA.Verify", len(sig), want)
	}
	r, s := splitScalars(sig)
	return backend.ECDSAVerify(k.Curve, k.Point, msg, r, s)
}

// Sign returns r||s using the hash bound to the curve.
func (k *ECDSAPrivateKey) Sign(msg []byte) ([]byte, error) {
	r, s, err := backend.ECDSASign(k.Curve, k.Point, k.D, msg)
	if err != nil {
		return nil, err
	}
	return joinScalars(r, s, k.Curve.ScalarSize()), nil
}

func (k *ECDSAPrivateKey) MarshalPrivate(w *wire.Writer) {
	k.MarshalPublic(w)
	w.PutMpint(k.D)
}

func (k *ECDSAPrivateKey) PublicOnly() Variant {
	return &ECDSAPublicKey{Curve: k.Curve, Point: append([]byte(nil), k.Point...)}
}

func curveFromName(name string) (backend.Curve, bool) {
	for _, c := range backend.Curves {
		if name == ecdsaPrefix+string(c) {
			return c, true
		}
	}
	return "", false
}

func newECDSAPublic(c backend.Curve, point []byte) (*ECDSAPublicKey, error) {
	if _, err := backend.ECDSAPublic(c, point); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.ECDSA", err)
	}
	return &ECDSAPublicKey{Curve: c, Point: append([]byte(nil), point...)}, nil
}

func newECDSAPrivate(c backend.Curve, point []byte, d *big.Int) (*ECDSAPrivateKey, error) {
	if _, err := backend.ECDSAPrivate(c, point, d); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.ECDSA", err)
	}
	return &ECDSAPrivateKey{
		ECDSAPublicKey: ECDSAPublicKey{Curve: c, Point: append([]byte(nil), point...)},
		D:              d,
	}, nil
}
