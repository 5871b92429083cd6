// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"encoding/base64"
	"strings"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
)

const (
	rfc4716Begin = "---- BEGIN SSH2 PUBLIC KEY ----"
	rfc4716End   = "---- END SSH2 PUBLIC KEY ----"

	// Lines may not exceed 72 bytes; ssh-keygen wraps at 70.
	rfc4716Width = 70
)

// ParseRFC4716 decodes an SSH2 public key file and returns the key and the
// value of its Comment header.
func ParseRFC4716(data []byte) (keys.Variant, string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	start := strings.Index(text, rfc4716Begin)
	if start < 0 {
		return nil, "", keyerr.New(keyerr.UnrecognizedFormat, "sshkey.ParseRFC4716", "missing %s", rfc4716Begin)
	}
	text = text[start+len(rfc4716Begin):]
	end := strings.Index(text, rfc4716End)
	if end < 0 {
		return nil, "", keyerr.New(keyerr.TruncatedInput, "sshkey.ParseRFC4716", "missing %s", rfc4716End)
	}

	var comment string
	var body strings.Builder
	lines := strings.Split(text[:end], "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if tag, value, ok := strings.Cut(line, ":"); ok && body.Len() == 0 {
			for strings.HasSuffix(value, "\\") && i+1 < len(lines) {
				i++
				value = strings.TrimSuffix(value, "\\") + strings.TrimSpace(lines[i])
			}
			if strings.EqualFold(strings.TrimSpace(tag), "Comment") {
				comment = unquote(strings.TrimSpace(value))
			}
			continue
		}
		body.WriteString(line)
	}

	blob, err := base64.StdEncoding.DecodeString(body.String())
	if err != nil {
		return nil, "", keyerr.Wrap(keyerr.MalformedEncoding, "sshkey.ParseRFC4716", err)
	}
	v, err := ParsePublicBlob(blob)
	if err != nil {
		return nil, "", err
	}
	return v, comment, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// MarshalRFC4716 renders v in the format of ssh-keygen -e.
func MarshalRFC4716(v keys.PublicParts, comment string) string {
	var b strings.Builder
	b.WriteString(rfc4716Begin)
	b.WriteByte('\n')
	if comment != "" {
		header := "Comment: \"" + comment + "\""
		for len(header) > rfc4716Width {
			b.WriteString(header[:rfc4716Width-1])
			b.WriteString("\\\n")
			header = header[rfc4716Width-1:]
		}
		b.WriteString(header)
		b.WriteByte('\n')
	}
	b64 := base64.StdEncoding.EncodeToString(MarshalPublicBlob(v))
	for len(b64) > rfc4716Width {
		b.WriteString(b64[:rfc4716Width])
		b.WriteByte('\n')
		b64 = b64[rfc4716Width:]
	}
	b.WriteString(b64)
	b.WriteByte('\n')
	b.WriteString(rfc4716End)
	b.WriteByte('\n')
	return b.String()
}
