// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
)

// SplitPublicLine splits a public key line (as found in an authorized_keys
// file) into algorithm, base64 key data and comment. Leading options such as
// from="..." or command="..." are skipped. The comment is the rest of the
// line with only its ends trimmed.
func SplitPublicLine(line string) (algorithm, keyData, comment string, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		err = keyerr.New(keyerr.MalformedEncoding, "sshkey.SplitPublicLine", "empty line")
		return
	}

	off := 0
	for {
		start, end := nextField(line, off)
		if start == end {
			err = keyerr.New(keyerr.UnrecognizedFormat, "sshkey.SplitPublicLine", "no SSH key type found in line")
			return
		}
		off = end
		if looksLikeKeyType(line[start:end]) {
			algorithm = line[start:end]
			break
		}
	}

	start, end := nextField(line, off)
	if start == end {
		err = keyerr.New(keyerr.MalformedEncoding, "sshkey.SplitPublicLine", "missing key data after %s", algorithm)
		return
	}
	keyData = line[start:end]
	comment = strings.TrimSpace(line[end:])
	return
}

// nextField returns the bounds of the next field at or after off. Inside
// double quotes whitespace does not end a field and a backslash escapes the
// following byte, as in authorized_keys options.
func nextField(line string, off int) (start, end int) {
	for off < len(line) && isBlank(line[off]) {
		off++
	}
	start = off
	quoted := false
	for ; off < len(line); off++ {
		switch c := line[off]; {
		case quoted && c == '\\' && off+1 < len(line):
			off++
		case c == '"':
			quoted = !quoted
		case !quoted && isBlank(c):
			return start, off
		}
	}
	return start, off
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func looksLikeKeyType(field string) bool {
	return strings.HasPrefix(field, "ssh-") ||
		strings.HasPrefix(field, "ecdsa-") ||
		strings.HasPrefix(field, "sk-")
}

// firstKeyLine returns the first line that is neither blank nor a # comment.
func firstKeyLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

// ParsePublicLine decodes the first key line in data and returns the key and
// its comment.
func ParsePublicLine(data []byte) (keys.Variant, string, error) {
	alg, b64, comment, err := SplitPublicLine(firstKeyLine(data))
	if err != nil {
		return nil, "", err
	}
	if !keys.IsKnownName(alg) {
		return nil, "", keyerr.New(keyerr.UnsupportedAlgorithm, "sshkey.ParsePublicLine", "key type %q", alg)
	}
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", keyerr.Wrap(keyerr.MalformedEncoding, "sshkey.ParsePublicLine", err)
	}
	v, err := ParsePublicBlob(blob)
	if err != nil {
		return nil, "", err
	}
	if v.Name() != alg {
		return nil, "", keyerr.New(keyerr.MalformedEncoding, "sshkey.ParsePublicLine", "line says %s but key data is %s", alg, v.Name())
	}
	return v, comment, nil
}

// MarshalPublicLine renders "<name> <base64> [comment]\n".
func MarshalPublicLine(v keys.PublicParts, comment string) string {
	line := v.Name() + " " + base64.StdEncoding.EncodeToString(MarshalPublicBlob(v))
	if comment != "" {
		line += " " + comment
	}
	return line + "\n"
}

// ParsePublicBlob decodes a wire-encoded public key.
func ParsePublicBlob(blob []byte) (keys.Variant, error) {
	return keys.ParsePublicBlob(blob)
}

// MarshalPublicBlob encodes the public half of v.
func MarshalPublicBlob(v keys.PublicParts) []byte {
	return keys.PublicBlob(v)
}

// CheckAlgorithm returns a warning for keys that current OpenSSH releases
// reject or discourage, and "" otherwise.
func CheckAlgorithm(v keys.PublicParts) string {
	switch v.Type() {
	case keys.DSA:
		return "ssh-dss keys are disabled by default since OpenSSH 7.0"
	case keys.RSA:
		if v.Size() < 2048 {
			return fmt.Sprintf("RSA key of %d bits is below the recommended 2048", v.Size())
		}
		if v.Size() < 3072 {
			return fmt.Sprintf("RSA key of %d bits; consider 3072 bits or ed25519", v.Size())
		}
	}
	return ""
}
