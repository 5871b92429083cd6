// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package backend

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// Sum hashes data with h.
func Sum(h crypto.Hash, data []byte) ([]byte, error) {
	if !h.Available() {
		return nil, keyerr.New(keyerr.BackendFailure, "backend.Sum", "hash %v not linked", h)
	}
	d := h.New()
	d.Write(data)
	return d.Sum(nil), nil
}
