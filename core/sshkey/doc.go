// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey reads and writes SSH key files: OpenSSH public lines, the
// openssh-key-v1 private container, PEM and PKCS#8 blocks, and RFC 4716
// public keys. Detect sniffs the format of unlabelled input and Parse routes
// it to the matching decoder.
package sshkey
