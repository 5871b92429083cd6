// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"bytes"
	"encoding/pem"
	"strings"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/internal/logging"
)

// Format identifies a key file encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatOpenSSH
	FormatOpenSSHPublic
	FormatPEM
	FormatPKCS8
	FormatEncryptedPKCS8
	FormatPEMPublic
	FormatRFC4716
)

var formatNames = map[Format]string{
	FormatUnknown:        "unknown",
	FormatOpenSSH:        "openssh",
	FormatOpenSSHPublic:  "openssh-public",
	FormatPEM:            "pem",
	FormatPKCS8:          "pkcs8",
	FormatEncryptedPKCS8: "pkcs8-encrypted",
	FormatPEMPublic:      "pem-public",
	FormatRFC4716:        "rfc4716",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat maps a format name back to its value. "pkcs8-encrypted" and
// "pkcs8" are both accepted as export targets.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, s := range formatNames {
		if s == name && f != FormatUnknown {
			return f, nil
		}
	}
	return FormatUnknown, keyerr.New(keyerr.InvalidArgument, "sshkey.ParseFormat", "unknown format %q", name)
}

// IsPrivate reports whether files of this format carry private keys.
func (f Format) IsPrivate() bool {
	switch f {
	case FormatOpenSSH, FormatPEM, FormatPKCS8, FormatEncryptedPKCS8:
		return true
	}
	return false
}

// Detect inspects data and reports its encoding. The checks run from the
// most to the least specific marker.
func Detect(data []byte) (Format, error) {
	if IsOpenSSHPrivate(data) {
		return FormatOpenSSH, nil
	}
	if alg, _, _, err := SplitPublicLine(firstKeyLine(data)); err == nil && keys.IsKnownName(alg) {
		return FormatOpenSSHPublic, nil
	}
	trimmed := bytes.TrimSpace(data)
	// pem.Decode skips text before the block, such as OpenSSL bag attributes.
	if bytes.Contains(trimmed, []byte(pemBegin)) {
		block, _ := pem.Decode(trimmed)
		if block == nil {
			return FormatUnknown, keyerr.New(keyerr.UnrecognizedFormat, "sshkey.Detect", "unterminated PEM block")
		}
		switch block.Type {
		case pemRSAPrivate, pemECPrivate, pemDSAPrivate:
			return FormatPEM, nil
		case pemPKCS8:
			return FormatPKCS8, nil
		case pemEncryptedPKCS8:
			return FormatEncryptedPKCS8, nil
		case pemPublic, pemRSAPublic:
			return FormatPEMPublic, nil
		}
		return FormatUnknown, keyerr.New(keyerr.UnrecognizedFormat, "sshkey.Detect", "PEM block type %q", block.Type)
	}
	if bytes.Contains(trimmed, []byte(rfc4716Begin)) {
		return FormatRFC4716, nil
	}
	return FormatUnknown, keyerr.New(keyerr.UnrecognizedFormat, "sshkey.Detect", "no known key format")
}

// LegacyEncrypted reports whether data is a traditional PEM key protected by
// Proc-Type/DEK-Info headers.
func LegacyEncrypted(data []byte) bool {
	block, _ := pem.Decode(bytes.TrimSpace(data))
	if block == nil {
		return false
	}
	_, ok := block.Headers[legacyEncryptHeader]
	return ok
}

// Parsed is the result of Parse.
type Parsed struct {
	Key     keys.Variant
	Comment string
	Format  Format
	// OpenSSH is set for openssh-key-v1 input.
	OpenSSH *OpenSSHParams
}

// Parse detects the format of data and decodes it. passphrase is only used
// for encrypted private keys. data is never modified.
func Parse(data []byte, passphrase security.Secret) (*Parsed, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	logging.Debugf("detected key format %s", format)

	out := &Parsed{Format: format}
	switch format {
	case FormatOpenSSH:
		out.Key, out.Comment, out.OpenSSH, err = ParseOpenSSH(data, passphrase)
	case FormatOpenSSHPublic:
		out.Key, out.Comment, err = ParsePublicLine(data)
	case FormatRFC4716:
		out.Key, out.Comment, err = ParseRFC4716(data)
	default:
		out.Key, err = ParsePEM(data, passphrase)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
