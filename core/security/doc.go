// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package security holds passphrases, derived cipher keys and decrypted
// private sections in redacting, zeroable wrappers so they never reach logs
// and can be wiped on every exit path.
package security
