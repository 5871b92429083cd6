// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/keypair"
	"github.com/toeirei/sshkeys/core/keys"
	"github.com/toeirei/sshkeys/core/security"
	"github.com/toeirei/sshkeys/core/sshkey"
	"github.com/toeirei/sshkeys/internal/i18n"
	"github.com/toeirei/sshkeys/internal/logging"
)

// exportFlags are shared by every command that writes a private key.
type exportFlags struct {
	cipher      string
	rounds      uint32
	newPassFile string
	noPass      bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cipher, "cipher", "", "cipher for encrypted OpenSSH keys (default from config)")
	cmd.Flags().Uint32Var(&f.rounds, "rounds", 0, "bcrypt KDF rounds for encrypted OpenSSH keys (default from config)")
	cmd.Flags().StringVar(&f.newPassFile, "new-passphrase-file", "", "encrypt the output with the passphrase in this file")
	cmd.Flags().BoolVar(&f.noPass, "no-passphrase", false, "write the private key unencrypted without asking")
}

// applyExport sets the OpenSSH export parameters from flags, falling back to the
// configuration.
func (a *app) applyExport(kp *keypair.KeyPair, f *exportFlags) error {
	opts := keypair.ExportOptions{Cipher: a.cfg.Export.Cipher}
	if a.cfg.Export.Rounds > 0 {
		opts.Rounds = uint32(a.cfg.Export.Rounds)
	}
	if f.cipher != "" {
		opts.Cipher = f.cipher
	}
	if f.rounds != 0 {
		opts.Rounds = f.rounds
	}
	return kp.SetExportDefaults(opts)
}

func (a *app) newConvertCmd() *cobra.Command {
	var (
		passFile string
		to       string
		out      string
		comment  string
		copyOut  bool
		ex       exportFlags
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a key to another format",
		Long: `Reads a key in any supported format and writes it as one of:
openssh, openssh-public, pem, pkcs8, pkcs8-encrypted, pem-public, rfc4716.
Private outputs are encrypted only when a new passphrase is supplied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Export.Format
			if cmd.Flags().Changed("to") {
				name = to
			}
			format, err := sshkey.ParseFormat(name)
			if err != nil {
				return err
			}

			kp, err := loadKey(cmd, args[0], passFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("comment") {
				kp.SetComment(comment)
			}

			var pass security.Secret
			if format.IsPrivate() {
				if !kp.HasPrivate() {
					return keyerr.New(keyerr.MissingPrivateKey, "cli.convert", "%s holds only a public key", args[0])
				}
				if err := a.applyExport(kp, &ex); err != nil {
					return err
				}
				pass, err = newPassphrase(cmd, ex.newPassFile, ex.noPass)
				if err != nil {
					return err
				}
				defer pass.Zero()
			}

			data, err := kp.Export(format, pass)
			if err != nil {
				return err
			}
			if err := writeResult(cmd, out, data, format.IsPrivate()); err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("convert.written", format, out))
			}
			if copyOut {
				copyToClipboard(cmd, string(data))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&passFile, "passphrase-file", "", "read the input passphrase from this file")
	cmd.Flags().StringVar(&to, "to", "", "output format (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&comment, "comment", "", "replace the key comment")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "also copy the result to the clipboard")
	ex.register(cmd)
	return cmd
}

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		typ     string
		bits    int
		comment string
		file    string
		force   bool
		copyPub bool
		ex      exportFlags
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new key pair",
		Long: `Generates a key and writes the OpenSSH private key to --file and the
public key to --file.pub.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := keys.ParseKeyType(typ)
			if err != nil {
				return err
			}
			pubFile := file + ".pub"
			if !force {
				for _, p := range []string{file, pubFile} {
					if _, err := os.Stat(p); err == nil {
						return keyerr.New(keyerr.InvalidArgument, "cli.generate", "%s", i18n.T("generate.exists", p))
					}
				}
			}

			kp, err := keypair.Generate(t, bits, comment)
			if err != nil {
				return err
			}
			if w := sshkey.CheckAlgorithm(kp.Key()); w != "" {
				logging.Warnf("%s", w)
			}
			if err := a.applyExport(kp, &ex); err != nil {
				return err
			}
			pass, err := newPassphrase(cmd, ex.newPassFile, ex.noPass)
			if err != nil {
				return err
			}
			defer pass.Zero()

			priv, err := kp.PrivateString(pass)
			if err != nil {
				return err
			}
			if err := writeResult(cmd, file, []byte(priv), true); err != nil {
				return err
			}
			if err := writeResult(cmd, pubFile, []byte(kp.PublicString()), false); err != nil {
				return err
			}

			kind, err := a.hashKind(cmd, "")
			if err != nil {
				return err
			}
			fp, err := kp.Fingerprint(kind)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, i18n.T("generate.saved_private", file))
			fmt.Fprintln(w, i18n.T("generate.saved_public", pubFile))
			fmt.Fprintln(w, i18n.T("generate.fingerprint"))
			fmt.Fprintf(w, "%s %s\n", fp, kp.Comment())
			fmt.Fprintln(w, i18n.T("generate.randomart"))
			fmt.Fprintln(w, fp.Art(kp.Type().String(), kp.Size()))
			if copyPub {
				copyToClipboard(cmd, kp.PublicString())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "ed25519", "key type (ed25519, ecdsa, rsa, dsa)")
	cmd.Flags().IntVarP(&bits, "bits", "b", 0, "key size; 0 picks the default for the type")
	cmd.Flags().StringVarP(&comment, "comment", "C", "", "key comment")
	cmd.Flags().StringVarP(&file, "file", "f", "", "private key output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVar(&copyPub, "copy", false, "copy the public key to the clipboard")
	_ = cmd.MarkFlagRequired("file")
	ex.register(cmd)
	return cmd
}
