// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/internal/i18n"
	"golang.org/x/term"
)

// Package-level so tests can simulate an interactive terminal.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// readPassphraseFile reads a passphrase file, dropping one trailing newline.
func readPassphraseFile(path string) (security.Secret, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read passphrase file: %w", err)
	}
	defer security.Wipe(data)
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	return security.FromBytes(data), nil
}

func prompt(cmd *cobra.Command, msg string) (security.Secret, error) {
	fmt.Fprint(cmd.ErrOrStderr(), msg)
	b, err := readPassword()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	defer security.Wipe(b)
	return security.FromBytes(b), nil
}

// passphraseFor returns the passphrase to decrypt name: from file when
// given, else from the terminal. Without either it reports
// PassphraseRequired.
func passphraseFor(cmd *cobra.Command, file, name string) (security.Secret, error) {
	if file != "" {
		return readPassphraseFile(file)
	}
	if !stdinIsTerminal() {
		return nil, keyerr.New(keyerr.PassphraseRequired, "cli", "%s is encrypted; use --passphrase-file", name)
	}
	return prompt(cmd, i18n.T("prompt.passphrase", name))
}

// newPassphrase returns the passphrase for a key being written. An empty
// result writes the key unencrypted.
func newPassphrase(cmd *cobra.Command, file string, none bool) (security.Secret, error) {
	if none {
		return nil, nil
	}
	if file != "" {
		return readPassphraseFile(file)
	}
	if !stdinIsTerminal() {
		return nil, nil
	}
	first, err := prompt(cmd, i18n.T("prompt.new_passphrase"))
	if err != nil {
		return nil, err
	}
	second, err := prompt(cmd, i18n.T("prompt.confirm_passphrase"))
	if err != nil {
		first.Zero()
		return nil, err
	}
	defer second.Zero()
	if !bytes.Equal(first, second) {
		first.Zero()
		return nil, errors.New(i18n.T("passphrase.mismatch"))
	}
	return first, nil
}
