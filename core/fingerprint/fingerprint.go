// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package fingerprint computes OpenSSH key fingerprints and the
// drunken-bishop randomart that ssh-keygen -lv prints next to them.
package fingerprint

import (
	"crypto"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/toeirei/sshkeys/core/backend"
	"github.com/toeirei/sshkeys/core/keyerr"
)

// HashKind selects the fingerprint digest.
type HashKind int

const (
	SHA256 HashKind = iota
	MD5
	SHA512
)

func (k HashKind) String() string {
	switch k {
	case MD5:
		return "MD5"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	}
	return "UNKNOWN"
}

func (k HashKind) hash() (crypto.Hash, error) {
	switch k {
	case MD5:
		return crypto.MD5, nil
	case SHA256:
		return crypto.SHA256, nil
	case SHA512:
		return crypto.SHA512, nil
	}
	return 0, keyerr.New(keyerr.InvalidArgument, "fingerprint", "unknown hash kind %d", int(k))
}

// ParseHashKind accepts md5, sha256 and sha512 in any case.
func ParseHashKind(s string) (HashKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md5":
		return MD5, nil
	case "sha256", "":
		return SHA256, nil
	case "sha512":
		return SHA512, nil
	}
	return 0, keyerr.New(keyerr.InvalidArgument, "fingerprint.ParseHashKind", "unknown hash %q", s)
}

// Digest is a fingerprint: the hash of a public key blob.
type Digest struct {
	Kind HashKind
	Sum  []byte
}

// Compute hashes a public key blob, the same bytes that are base64 encoded
// in an OpenSSH public key line.
func Compute(blob []byte, kind HashKind) (Digest, error) {
	h, err := kind.hash()
	if err != nil {
		return Digest{}, err
	}
	sum, err := backend.Sum(h, blob)
	if err != nil {
		return Digest{}, err
	}
	return Digest{Kind: kind, Sum: sum}, nil
}

// String renders the digest like ssh-keygen -l: colon-separated hex for
// MD5, unpadded base64 for the SHA-2 family.
func (d Digest) String() string {
	if d.Kind == MD5 {
		h := hex.EncodeToString(d.Sum)
		var b strings.Builder
		b.WriteString("MD5:")
		for i := 0; i < len(h); i += 2 {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(h[i : i+2])
		}
		return b.String()
	}
	return d.Kind.String() + ":" + base64.RawStdEncoding.EncodeToString(d.Sum)
}

// Art renders the randomart of d framed with "[TYPE BITS]" and "[HASH]".
func (d Digest) Art(keyType string, bits int) string {
	return NewRandomArt(d.Sum).Render(Title(keyType, bits), d.Kind.String())
}
