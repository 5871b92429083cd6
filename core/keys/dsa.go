// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"math/big"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/wire"
)

// DSAPublicKey is an ssh-dss public key.
type DSAPublicKey struct {
	P, Q, G, Y *big.Int
}

// DSAPrivateKey is an ssh-dss key with its secret exponent.
type DSAPrivateKey struct {
	DSAPublicKey
	X *big.Int
}

func (*DSAPublicKey) variant() {}

func (*DSAPublicKey) Type() KeyType { return DSA }
func (*DSAPublicKey) Name() string  { return NameDSA }
func (k *DSAPublicKey) Size() int   { return k.P.BitLen() }

func (k *DSAPublicKey) MarshalPublic(w *wire.Writer) {
	w.PutMpint(k.P)
	w.PutMpint(k.Q)
	w.PutMpint(k.G)
	w.PutMpint(k.Y)
}

func (k *DSAPublicKey) Equal(other PublicParts) bool {
	var o *DSAPublicKey
	switch v := other.(type) {
	case *DSAPublicKey:
		o = v
	case *DSAPrivateKey:
		o = &v.DSAPublicKey
	default:
		return false
	}
	return k.P.Cmp(o.P) == 0 && k.Q.Cmp(o.Q) == 0 && k.G.Cmp(o.G) == 0 && k.Y.Cmp(o.Y) == 0
}

func (k *DSAPublicKey) fields() backend.DSAFields {
	return backend.DSAFields{P: k.P, Q: k.Q, G: k.G, Y: k.Y}
}

func (k *DSAPublicKey) scalarSize() int { return backend.DSASignatureSize(k.Q) }

// Verify checks a raw r||s signature over the SHA-1 digest of msg.
func (k *DSAPublicKey) Verify(msg, sig []byte) (bool, error) {
	if want := 2 * k.scalarSize(); len(sig) != want {
		return false, invalidSig("keys.DSA.Verify", len(sig), want)
	}
	r, s := splitScalars(sig)
	return backend.DSAVerify(k.fields(), msg, r, s)
}

// Sign returns r||s, each padded to the width of q.
func (k *DSAPrivateKey) Sign(msg []byte) ([]byte, error) {
	f := k.fields()
	f.X = k.X
	r, s, err := backend.DSASign(f, msg)
	if err != nil {
		return nil, err
	}
	return joinScalars(r, s, k.scalarSize()), nil
}

func (k *DSAPrivateKey) MarshalPrivate(w *wire.Writer) {
	k.MarshalPublic(w)
	w.PutMpint(k.X)
}

func (k *DSAPrivateKey) PublicOnly() Variant {
	pub := k.DSAPublicKey
	return &pub
}

func newDSAPublic(f backend.DSAFields) (*DSAPublicKey, error) {
	if _, err := backend.DSAPublic(f); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.DSA", err)
	}
	return &DSAPublicKey{P: f.P, Q: f.Q, G: f.G, Y: f.Y}, nil
}

func newDSAPrivate(f backend.DSAFields) (*DSAPrivateKey, error) {
	if _, err := backend.DSAPrivate(f); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.DSA", err)
	}
	if new(big.Int).Exp(f.G, f.X, f.P).Cmp(f.Y) != 0 {
		return nil, keyerr.New(keyerr.MalformedEncoding, "keys.DSA", "private exponent does not match public value")
	}
	return &DSAPrivateKey{
		DSAPublicKey: DSAPublicKey{P: f.P, Q: f.Q, G: f.G, Y: f.Y},
		X:            f.X,
	}, nil
}
