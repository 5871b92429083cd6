// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/internal/i18n"
)

// errSignatureMismatch makes `verify` exit non-zero after it has already
// reported the result.
var errSignatureMismatch = errors.New("signature mismatch")

var errorMessageIDs = map[keyerr.Kind]string{
	keyerr.TruncatedInput:                  "error.truncated_input",
	keyerr.MalformedEncoding:               "error.malformed_encoding",
	keyerr.UnrecognizedFormat:              "error.unrecognized_format",
	keyerr.UnsupportedCipher:               "error.unsupported_cipher",
	keyerr.UnsupportedAlgorithm:            "error.unsupported_algorithm",
	keyerr.PassphraseRequired:              "error.passphrase_required",
	keyerr.IncorrectPassphraseOrCorruptKey: "error.incorrect_passphrase",
	keyerr.MissingPrivateKey:               "error.missing_private_key",
	keyerr.InvalidSignatureEncoding:        "error.invalid_signature_encoding",
	keyerr.BackendFailure:                  "error.backend_failure",
	keyerr.InvalidArgument:                 "error.invalid_argument",
}

// describeError renders err for the terminal: a localised summary of its
// kind followed by the technical detail.
func describeError(err error) string {
	id, ok := errorMessageIDs[keyerr.KindOf(err)]
	if !ok {
		id = "error.generic"
	}
	return i18n.T("error.format", i18n.T(id), err)
}
