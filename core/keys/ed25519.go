// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"bytes"
	"crypto/ed25519"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/core/wire"
)

// Ed25519PublicKey is an ssh-ed25519 public key.
type Ed25519PublicKey struct {
	PublicBytes []byte
}

// Ed25519PrivateKey is an ssh-ed25519 key with its 32-byte seed.
type Ed25519PrivateKey struct {
	Ed25519PublicKey
	Seed []byte
}

func (*Ed25519PublicKey) variant() {}

func (*Ed25519PublicKey) Type() KeyType { return Ed25519 }
func (*Ed25519PublicKey) Name() string  { return NameEd25519 }
func (*Ed25519PublicKey) Size() int     { return 256 }

func (k *Ed25519PublicKey) MarshalPublic(w *wire.Writer) {
	w.PutString(k.PublicBytes)
}

func (k *Ed25519PublicKey) Equal(other PublicParts) bool {
	switch v := other.(type) {
	case *Ed25519PublicKey:
		return bytes.Equal(k.PublicBytes, v.PublicBytes)
	case *Ed25519PrivateKey:
		return bytes.Equal(k.PublicBytes, v.PublicBytes)
	}
	return false
}

// Verify checks a 64-byte signature.
func (k *Ed25519PublicKey) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != ed25519.SignatureSize {
		return false, invalidSig("keys.Ed25519.Verify", len(sig), ed25519.SignatureSize)
	}
	return backend.Ed25519Verify(k.PublicBytes, msg, sig)
}

func (k *Ed25519PrivateKey) Sign(msg []byte) ([]byte, error) {
	return backend.Ed25519Sign(k.Seed, k.PublicBytes, msg)
}

// MarshalPrivate writes A followed by the 64-byte seed||A string.
func (k *Ed25519PrivateKey) MarshalPrivate(w *wire.Writer) {
	w.PutString(k.PublicBytes)
	priv := make([]byte, 0, ed25519.PrivateKeySize)
	priv = append(priv, k.Seed...)
	priv = append(priv, k.PublicBytes...)
	w.PutString(priv)
	security.Wipe(priv)
}

func (k *Ed25519PrivateKey) PublicOnly() Variant {
	return &Ed25519PublicKey{PublicBytes: append([]byte(nil), k.PublicBytes...)}
}

func newEd25519Public(pub []byte) (*Ed25519PublicKey, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, keyerr.New(keyerr.MalformedEncoding, "keys.Ed25519", "public key is %d bytes, want %d", len(pub), ed25519.PublicKeySize)
	}
	return &Ed25519PublicKey{PublicBytes: append([]byte(nil), pub...)}, nil
}

func newEd25519Private(seed, pub []byte) (*Ed25519PrivateKey, error) {
	if _, err := backend.Ed25519Private(seed, pub); err != nil {
		return nil, keyerr.Wrap(keyerr.MalformedEncoding, "keys.Ed25519", err)
	}
	return &Ed25519PrivateKey{
		Ed25519PublicKey: Ed25519PublicKey{PublicBytes: append([]byte(nil), pub...)},
		Seed:             append([]byte(nil), seed...),
	}, nil
}
