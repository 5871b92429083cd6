// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keypair"
	"github.com/toeirei/sshkeys/core/sshkey"
	"github.com/toeirei/sshkeys/internal/logging"
)

// readInput reads path, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// loadKey decodes the key at path, asking for a passphrase only when the
// file turns out to be encrypted.
func loadKey(cmd *cobra.Command, path, passFile string) (*keypair.KeyPair, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return decodeKey(cmd, data, path, passFile)
}

func decodeKey(cmd *cobra.Command, data []byte, path, passFile string) (*keypair.KeyPair, error) {
	kp, err := keypair.FromBytes(data, nil)
	if keyerr.KindOf(err) != keyerr.PassphraseRequired {
		return kp, err
	}

	pass, err := passphraseFor(cmd, passFile, path)
	if err != nil {
		return nil, err
	}
	defer pass.Zero()
	return keypair.FromBytes(data, pass)
}

// loadPublic decodes data for read-only use and reports whether it was
// encrypted. Encrypted OpenSSH files expose their public key in the clear, so
// no passphrase is needed for them.
func loadPublic(cmd *cobra.Command, data []byte, path, passFile string) (*keypair.KeyPair, bool, error) {
	if sshkey.IsOpenSSHPrivate(data) {
		enc, err := sshkey.OpenSSHEncrypted(data)
		if err != nil {
			return nil, false, err
		}
		if enc && passFile == "" {
			v, err := sshkey.PeekOpenSSHPublic(data)
			if err != nil {
				return nil, true, err
			}
			logging.Debugf("read public half of encrypted %s without passphrase", path)
			return keypair.New(v, ""), true, nil
		}
	}
	kp, err := decodeKey(cmd, data, path, passFile)
	if err != nil {
		return nil, false, err
	}
	return kp, encrypted(data), nil
}

// encrypted reports whether the key file data is passphrase protected.
func encrypted(data []byte) bool {
	if sshkey.IsOpenSSHPrivate(data) {
		enc, _ := sshkey.OpenSSHEncrypted(data)
		return enc
	}
	if f, err := sshkey.Detect(data); err == nil && f == sshkey.FormatEncryptedPKCS8 {
		return true
	}
	return sshkey.LegacyEncrypted(data)
}
