// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package encryption implements the passphrase pipeline that guards OpenSSH
// private keys: bcrypt-pbkdf turns a passphrase and salt into key+IV
// material, and a named symmetric cipher encrypts or decrypts the private
// section. Derived material is zeroed before every return.
package encryption
