// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"crypto"
	"crypto/elliptic"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// Curve is an OpenSSH curve identifier as it appears on the wire.
type Curve string

const (
	NISTP256 Curve = "nistp256"
	NISTP384 Curve = "nistp384"
	NISTP521 Curve = "nistp521"
)

// Curves lists the supported curves in ascending size.
var Curves = []Curve{NISTP256, NISTP384, NISTP521}

// ParseCurve validates an identifier read from a key blob.
func ParseCurve(id string) (Curve, error) {
	switch Curve(id) {
	case NISTP256, NISTP384, NISTP521:
		return Curve(id), nil
	}
	return "", keyerr.New(keyerr.UnsupportedAlgorithm, "backend.ParseCurve", "unsupported curve %q", id)
}

// CurveForBits maps an ECDSA key size to its curve.
func CurveForBits(bits int) (Curve, error) {
	switch bits {
	case 256:
		return NISTP256, nil
	case 384:
		return NISTP384, nil
	case 521:
		return NISTP521, nil
	}
	return "", keyerr.New(keyerr.BackendFailure, "backend.CurveForBits", "no curve of %d bits", bits)
}

// Elliptic returns the Go curve implementation.
func (c Curve) Elliptic() elliptic.Curve {
	switch c {
	case NISTP256:
		return elliptic.P256()
	case NISTP384:
		return elliptic.P384()
	case NISTP521:
		return elliptic.P521()
	}
	return nil
}

// Hash is the digest ECDSA uses with this curve (RFC 5656 §6.2.1).
func (c Curve) Hash() crypto.Hash {
	switch c {
	case NISTP384:
		return crypto.SHA384
	case NISTP521:
		return crypto.SHA512
	}
	return crypto.SHA256
}

// Bits is the field size of the curve.
func (c Curve) Bits() int {
	if e := c.Elliptic(); e != nil {
		return e.Params().BitSize
	}
	return 0
}

// ScalarSize is the byte width of one signature component.
func (c Curve) ScalarSize() int { return (c.Bits() + 7) / 8 }
