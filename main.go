// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for sshkeys.
//
// Usage:
//
//	go run . [command] [flags]
//	./sshkeys [command] [flags]
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/toeirei/sshkeys/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
