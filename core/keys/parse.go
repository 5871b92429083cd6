// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import (
	"bytes"
	"crypto/ed25519"
	"math/big"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/wire"
)

// ParsePublicBlob decodes a complete public blob: name followed by fields.
func ParsePublicBlob(blob []byte) (Variant, error) {
	r := wire.NewReader(blob)
	name, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	v, err := ParsePublicFields(name, r)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd("keys.ParsePublicBlob"); err != nil {
		return nil, err
	}
	return v, nil
}

// ParsePublicFields reads the public fields that follow name in a blob.
func ParsePublicFields(name string, r *wire.Reader) (Variant, error) {
	switch name {
	case NameRSA:
		e, err := r.ReadMpint()
		if err != nil {
			return nil, err
		}
		n, err := r.ReadMpint()
		if err != nil {
			return nil, err
		}
		return newRSAPublic(e, n)
	case NameDSA:
		f, err := readDSAPublic(r)
		if err != nil {
			return nil, err
		}
		return newDSAPublic(f)
	case NameEd25519:
		pub, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return newEd25519Public(pub)
	}
	if c, ok := curveFromName(name); ok {
		point, err := readCurvePoint(c, r)
		if err != nil {
			return nil, err
		}
		return newECDSAPublic(c, point)
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.ParsePublicFields", "key type %q", name)
}

// ParsePrivateSection reads the private fields that follow name inside an
// OpenSSH private section and checks that they form a consistent key.
func ParsePrivateSection(name string, r *wire.Reader) (Variant, error) {
	switch name {
	case NameRSA:
		var f backend.RSAFields
		for _, dst := range []**big.Int{&f.N, &f.E, &f.D, &f.Iqmp, &f.P, &f.Q} {
			v, err := r.ReadMpint()
			if err != nil {
				return nil, err
			}
			*dst = v
		}
		return newRSAPrivate(f)
	case NameDSA:
		f, err := readDSAPublic(r)
		if err != nil {
			return nil, err
		}
		if f.X, err = r.ReadMpint(); err != nil {
			return nil, err
		}
		return newDSAPrivate(f)
	case NameEd25519:
		pub, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		start := r.Offset()
		priv, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if len(priv) != ed25519.PrivateKeySize || !bytes.Equal(priv[ed25519.SeedSize:], pub) {
			return nil, keyerr.At(keyerr.MalformedEncoding, "keys.ParsePrivateSection", start, "malformed ed25519 private key")
		}
		return newEd25519Private(priv[:ed25519.SeedSize], pub)
	}
	if c, ok := curveFromName(name); ok {
		point, err := readCurvePoint(c, r)
		if err != nil {
			return nil, err
		}
		d, err := r.ReadMpint()
		if err != nil {
			return nil, err
		}
		return newECDSAPrivate(c, point, d)
	}
	return nil, keyerr.New(keyerr.UnsupportedAlgorithm, "keys.ParsePrivateSection", "key type %q", name)
}

func readDSAPublic(r *wire.Reader) (backend.DSAFields, error) {
	var f backend.DSAFields
	for _, dst := range []**big.Int{&f.P, &f.Q, &f.G, &f.Y} {
		v, err := r.ReadMpint()
		if err != nil {
			return f, err
		}
		*dst = v
	}
	return f, nil
}

// readCurvePoint reads the curve identifier, which must agree with the key
// name, and the encoded point.
func readCurvePoint(c backend.Curve, r *wire.Reader) ([]byte, error) {
	start := r.Offset()
	id, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	if id != string(c) {
		return nil, keyerr.At(keyerr.MalformedEncoding, "keys.ECDSA", start, "curve %q does not match key type %s", id, c)
	}
	return r.ReadString()
}
