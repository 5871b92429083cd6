// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"crypto"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keypair"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/internal/i18n"
)

var rsaHashes = map[string]crypto.Hash{
	"sha1":   crypto.SHA1,
	"sha256": crypto.SHA256,
	"sha512": crypto.SHA512,
}

// withRSAHash applies --rsa-hash to RSA keys and ignores it for the rest.
func withRSAHash(kp *keypair.KeyPair, name string) (*keypair.KeyPair, error) {
	if kp.Type() != keys.RSA || name == "" {
		return kp, nil
	}
	h, ok := rsaHashes[strings.ToLower(name)]
	if !ok {
		return nil, keyerr.New(keyerr.InvalidArgument, "cli", "unknown RSA hash %q", name)
	}
	return kp.WithRSAHash(h)
}

func (a *app) newSignCmd() *cobra.Command {
	var (
		passFile string
		message  string
		out      string
		rsaHash  string
	)
	cmd := &cobra.Command{
		Use:   "sign <private-key>",
		Short: "Sign a message with a private key",
		Long: `Signs the contents of --message ("-" for stdin) and prints the raw
signature base64 encoded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readInput(cmd, message)
			if err != nil {
				return err
			}
			kp, err := loadKey(cmd, args[0], passFile)
			if err != nil {
				return err
			}
			if kp, err = withRSAHash(kp, rsaHash); err != nil {
				return err
			}
			sig, err := kp.Sign(msg)
			if err != nil {
				return err
			}
			return writeResult(cmd, out, []byte(base64.StdEncoding.EncodeToString(sig)+"\n"), false)
		},
	}
	cmd.Flags().StringVar(&passFile, "passphrase-file", "", "read the passphrase from this file")
	cmd.Flags().StringVarP(&message, "message", "m", "-", "file to sign")
	cmd.Flags().StringVarP(&out, "out", "o", "", "signature output file (default stdout)")
	cmd.Flags().StringVar(&rsaHash, "rsa-hash", "", "hash for RSA signatures (sha1, sha256, sha512)")
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	var (
		message   string
		signature string
		rsaHash   string
	)
	cmd := &cobra.Command{
		Use:   "verify <key>",
		Short: "Verify a signature",
		Long: `Checks a base64 signature produced by "sign" against the contents of
--message. Exits non-zero when the signature does not match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readInput(cmd, message)
			if err != nil {
				return err
			}
			encoded, err := readInput(cmd, signature)
			if err != nil {
				return err
			}
			sig, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(encoded)))
			if err != nil {
				return keyerr.Wrap(keyerr.InvalidSignatureEncoding, "cli.verify", err)
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			kp, _, err := loadPublic(cmd, data, args[0], "")
			if err != nil {
				return err
			}
			if kp, err = withRSAHash(kp, rsaHash); err != nil {
				return err
			}
			ok, err := kp.Verify(msg, sig)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("verify.bad"))
				return errSignatureMismatch
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("verify.ok", kp.Type(), kp.Key().Name()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "-", "file holding the signed data")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "file holding the base64 signature")
	cmd.Flags().StringVar(&rsaHash, "rsa-hash", "", "hash used by RSA signatures (sha1, sha256, sha512)")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
