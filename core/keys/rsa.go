// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"crypto"
	"math/big"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/wire"
)

// DefaultRSAHash is used when RSAPublicKey.Hash is zero.
const DefaultRSAHash = crypto.SHA256

// RSAPublicKey is an ssh-rsa public key. Hash selects the signature digest
// and is not part of the key material.
type RSAPublicKey struct {
	E, N *big.Int
	Hash crypto.Hash
}

// RSAPrivateKey is an ssh-rsa key with its secret fields.
type RSAPrivateKey struct {
	RSAPublicKey
	D, Iqmp, P, Q *big.Int
}

func (*RSAPublicKey) variant() {}

func (*RSAPublicKey) Type() KeyType { return RSA }
func (*RSAPublicKey) Name() string  { return NameRSA }
func (k *RSAPublicKey) Size() int   { return k.N.BitLen() }

func (k *RSAPublicKey) MarshalPublic(w *wire.Writer) {
	w.PutMpint(k.E)
	w.PutMpint(k.N)
}

func (k *RSAPublicKey) Equal(other PublicParts) bool {
	o := rsaPublicOf(other)
	return o != nil && k.E.Cmp(o.E) == 0 && k.N.Cmp(o.N) == 0
}

func rsaPublicOf(v PublicParts) *RSAPublicKey {
	switch k := v.(type) {
	case *RSAPublicKey:
		return k
	case *RSAPrivateKey:
		return &k.RSAPublicKey
	}
	return nil
}

// SignatureHash returns the digest used for signatures.
func (k *RSAPublicKey) SignatureHash() (crypto.Hash, error) {
	switch k.Hash {
	case 0:
		return DefaultRSAHash, nil
	case crypto.SHA1, crypto.SHA256, crypto.SHA512:
		return k.Hash, nil
	}
	return 0, keyerr.New(keyerr.InvalidArgument, "keys.RSA", "unsupported signature hash %v", k.Hash)
}

// SignatureAlgorithm is the SSH signature name matching SignatureHash.
func (k *RSAPublicKey) SignatureAlgorithm() string {
	h, _ := k.SignatureHash()
	switch h {
	case crypto.SHA1:
		return "ssh-rsa"
	case crypto.SHA512:
		return "rsa-sha2-512"
	}
	return "rsa-sha2-256"
}

func (k *RSAPublicKey) sigLen() int { return (k.N.BitLen() + 7) / 8 }

// Verify checks a raw PKCS#1 v1.5 signature of modulus length.
func (k *RSAPublicKey) Verify(msg, sig []byte) (bool, error) {
	h, err := k.SignatureHash()
	if err != nil {
		return false, err
	}
	if len(sig) != k.sigLen() {
		return false, invalidSig("keys.RSA.Verify", len(sig), k.sigLen())
	}
	return backend.RSAVerify(k.E, k.N, h, msg, sig)
}

func (k *RSAPrivateKey) fields() backend.RSAFields {
	return backend.RSAFields{E: k.E, N: k.N, D: k.D, P: k.P, Q: k.Q, Iqmp: k.Iqmp}
}

// Sign returns a raw PKCS#1 v1.5 signature.
func (k *RSAPrivateKey) Sign(msg []byte) ([]byte, error) {
	h, err := k.SignatureHash()
	if err != nil {
		return nil, err
	}
	return backend.RSASign(k.fields(), h, msg)
}

func (k *RSAPrivateKey) MarshalPrivate(w *wire.Writer) {
	w.PutMpint(k.N)
	w.PutMpint(k.E)
	w.PutMpint(k.D)
	w.PutMpint(k.Iqmp)
	w.PutMpint(k.P)
	w.PutMpint(k.Q)
}

func (k *RSAPrivateKey) PublicOnly() Variant {
	pub := k.RSAPublicKey
	return &pub
}

func newRSAPublic(e, n *big.Int) (*RSAPublicKey, error) {
	if _, err := backend.RSAPublic(e, n); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.RSA", err)
	}
	return &RSAPublicKey{E: e, N: n}, nil
}

func newRSAPrivate(f backend.RSAFields) (*RSAPrivateKey, error) {
	if _, err := backend.RSAPrivate(f); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.RSA", err)
	}
	if f.Iqmp == nil || new(big.Int).Mod(new(big.Int).Mul(f.Iqmp, f.Q), f.P).Cmp(big.NewInt(1)) != 0 {
		return nil, keyerr.New(keyerr.MalformedEncoding, "keys.RSA", "iqmp is not the inverse of q mod p")
	}
	return &RSAPrivateKey{
		RSAPublicKey: RSAPublicKey{E: f.E, N: f.N},
		D:            f.D,
		Iqmp:         f.Iqmp,
		P:            f.P,
		Q:            f.Q,
	}, nil
}
