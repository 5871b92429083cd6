// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the sshkeys command configuration. It
// uses Viper for file/env/flag parsing and goccy/go-yaml to write files.
package config
