// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the sshkeys command-line interface using Cobra.
// Commands stay thin: they read files, collect passphrases and delegate to
// the core keypair facade.
package cli
