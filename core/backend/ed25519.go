// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// Ed25519Private checks that seed derives pub and returns the 64-byte key.
func Ed25519Private(seed, pub []byte) (ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize || len(pub) != ed25519.PublicKeySize {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.Ed25519Private", "bad key lengths seed=%d pub=%d", len(seed), len(pub))
	}
	k := ed25519.NewKeyFromSeed(seed)
	if !bytes.Equal(k[ed25519.SeedSize:], pub) {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.Ed25519Private", "seed does not match public key")
	}
	return k, nil
}

// Ed25519Sign signs msg.
func Ed25519Sign(seed, pub, msg []byte) ([]byte, error) {
	k, err := Ed25519Private(seed, pub)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(k, msg), nil
}

// Ed25519Verify checks a 64-byte signature.
func Ed25519Verify(pub, msg, sig []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, keyerr.New(keyerr.BackendFailure, "backend.Ed25519Verify", "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}

// GenerateEd25519 returns a fresh seed and its public key.
func GenerateEd25519() (seed, pub []byte, err error) {
	p, k, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, keyerr.Wrap(keyerr.BackendFailure, "backend.GenerateEd25519", err)
	}
	return k.Seed(), []byte(p), nil
}
