// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keyerr defines the typed errors returned by every sshkeys package.
// Callers branch on the Kind with errors.Is against the exported sentinels or
// with KindOf; the wrapped cause stays available through errors.Unwrap.
package keyerr

import (
	"errors"
	"fmt"
)

// Kind names the cause of a failure.
type Kind int

const (
	Unknown Kind = iota
	TruncatedInput
	MalformedEncoding
	UnrecognizedFormat
	UnsupportedCipher
	UnsupportedAlgorithm
	PassphraseRequired
	// IncorrectPassphraseOrCorruptKey is deliberately ambiguous: after a
	// failed check-int or padding comparison there is no way to tell a
	// wrong passphrase from a damaged file.
	IncorrectPassphraseOrCorruptKey
	MissingPrivateKey
	InvalidSignatureEncoding
	BackendFailure
	InvalidArgument
)

var kindNames = map[Kind]string{
	Unknown:                         "unknown error",
	TruncatedInput:                  "truncated input",
	MalformedEncoding:               "malformed encoding",
	UnrecognizedFormat:              "unrecognized key format",
	UnsupportedCipher:               "unsupported cipher",
	UnsupportedAlgorithm:            "unsupported algorithm",
	PassphraseRequired:              "passphrase required",
	IncorrectPassphraseOrCorruptKey: "incorrect passphrase or corrupt key",
	MissingPrivateKey:               "missing private key",
	InvalidSignatureEncoding:        "invalid signature encoding",
	BackendFailure:                  "crypto backend failure",
	InvalidArgument:                 "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the concrete error type. Offset is the byte position inside the
// decoded input for codec failures and -1 otherwise.
type Error struct {
	Kind   Kind
	Op     string
	Offset int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Offset >= 0 {
		s = fmt.Sprintf("%s at offset %d", s, e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same Kind. Sentinels are
// *Error values without Op, Msg and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

func sentinel(k Kind) *Error { return &Error{Kind: k, Offset: -1} }

var (
	ErrTruncatedInput                  = sentinel(TruncatedInput)
	ErrMalformedEncoding               = sentinel(MalformedEncoding)
	ErrUnrecognizedFormat              = sentinel(UnrecognizedFormat)
	ErrUnsupportedCipher               = sentinel(UnsupportedCipher)
	ErrUnsupportedAlgorithm            = sentinel(UnsupportedAlgorithm)
	ErrPassphraseRequired              = sentinel(PassphraseRequired)
	ErrIncorrectPassphraseOrCorruptKey = sentinel(IncorrectPassphraseOrCorruptKey)
	ErrMissingPrivateKey               = sentinel(MissingPrivateKey)
	ErrInvalidSignatureEncoding        = sentinel(InvalidSignatureEncoding)
	ErrBackendFailure                  = sentinel(BackendFailure)
	ErrInvalidArgument                 = sentinel(InvalidArgument)
)

// New returns an error of the given kind with a formatted detail message.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// At returns a positional codec error.
func At(kind Kind, op string, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Offset: -1, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
