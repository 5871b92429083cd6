// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keys models the four SSH key families as typed variants. Each
// family has a public and a private struct; a private variant embeds its
// public half, so holding a *PublicKey type means no secret fields exist.
package keys

import (
	"strings"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/wire"
)

// KeyType is the algorithm family of a key.
type KeyType int

const (
	RSA KeyType = iota + 1
	DSA
	ECDSA
	Ed25519
)

// String returns the label ssh-keygen prints in fingerprints and randomart.
func (t KeyType) String() string {
	switch t {
	case RSA:
		return "RSA"
	case DSA:
		return "DSA"
	case ECDSA:
		return "ECDSA"
	case Ed25519:
		return "ED25519"
	}
	return "UNKNOWN"
}

// ParseKeyType accepts the names used by ssh-keygen -t.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(s) {
	case "rsa":
		return RSA, nil
	case "dsa", "dss":
		return DSA, nil
	case "ecdsa":
		return ECDSA, nil
	case "ed25519":
		return Ed25519, nil
	}
	return 0, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.ParseKeyType", "unknown key type %q", s)
}

// Wire names of the supported key types.
const (
	NameRSA      = "ssh-rsa"
	NameDSA      = "ssh-dss"
	NameEd25519  = "ssh-ed25519"
	ecdsaPrefix  = "ecdsa-sha2-"
	NameECDSA256 = ecdsaPrefix + string(backend.NISTP256)
	NameECDSA384 = ecdsaPrefix + string(backend.NISTP384)
	NameECDSA521 = ecdsaPrefix + string(backend.NISTP521)
)

// Names lists every key name this package can decode.
var Names = []string{NameRSA, NameDSA, NameECDSA256, NameECDSA384, NameECDSA521, NameEd25519}

// IsKnownName reports whether name is a supported key name.
func IsKnownName(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// PublicParts is implemented by every variant.
type PublicParts interface {
	Type() KeyType
	// Name is the wire name, e.g. "ssh-ed25519".
	Name() string
	// Size is the key size in bits as ssh-keygen reports it.
	Size() int
	// MarshalPublic writes the public fields that follow the name in the
	// public blob.
	MarshalPublic(w *wire.Writer)
	// Equal compares public fields only.
	Equal(other PublicParts) bool
}

// PrivateParts is implemented by variants that hold secret fields.
type PrivateParts interface {
	PublicParts
	// MarshalPrivate writes the fields that follow the name in an OpenSSH
	// private section.
	MarshalPrivate(w *wire.Writer)
	// PublicOnly returns the public half.
	PublicOnly() Variant
}

// Signer produces raw signatures.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// Verifier checks raw signatures. A well-formed signature that does not
// match yields false; a malformed one yields InvalidSignatureEncoding.
type Verifier interface {
	Verify(msg, sig []byte) (bool, error)
}

// Variant is one of the eight key structs in this package.
type Variant interface {
	PublicParts
	Verifier
	variant()
}

// PublicBlob encodes name and public fields, the byte string fingerprints
// are computed over.
func PublicBlob(v PublicParts) []byte {
	w := wire.NewWriter()
	w.PutText(v.Name())
	v.MarshalPublic(w)
	return w.Bytes()
}

// HasPrivate reports whether v carries secret fields.
func HasPrivate(v Variant) bool {
	_, ok := v.(PrivateParts)
	return ok
}

func invalidSig(op string, got, want int) error {
	return keyerr.New(keyerr.InvalidSignatureEncoding, op, "signature is %d bytes, want %d", got, want)
}
