// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/fingerprint"
	"github.com/toeirei/sshkeys/core/keypair"
	"github.com/toeirei/sshkeys/core/sshkey"
	"github.com/toeirei/sshkeys/internal/i18n"
	"github.com/toeirei/sshkeys/internal/logging"
)

// keyReport is the machine readable form of `inspect`.
type keyReport struct {
	File        string `yaml:"file"`
	Format      string `yaml:"format"`
	Type        string `yaml:"type"`
	Algorithm   string `yaml:"algorithm"`
	Bits        int    `yaml:"bits"`
	Comment     string `yaml:"comment,omitempty"`
	Private     bool   `yaml:"private"`
	Encrypted   bool   `yaml:"encrypted"`
	Fingerprint string `yaml:"fingerprint"`
	PublicKey   string `yaml:"public_key"`
	Warning     string `yaml:"warning,omitempty"`
}

// hashKind resolves the --hash flag against the configured default.
func (a *app) hashKind(cmd *cobra.Command, flag string) (fingerprint.HashKind, error) {
	name := a.cfg.Fingerprint.Hash
	if cmd.Flags().Changed("hash") {
		name = flag
	}
	return fingerprint.ParseHashKind(name)
}

func (a *app) newInspectCmd() *cobra.Command {
	var (
		passFile string
		hash     string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show what kind of key a file holds",
		Long: `Detects the encoding of a key file and prints its type, size, comment,
fingerprint and public key. Encrypted OpenSSH keys are inspected without a
passphrase unless --passphrase-file is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := a.hashKind(cmd, hash)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			format, err := sshkey.Detect(data)
			if err != nil {
				return err
			}
			kp, enc, err := loadPublic(cmd, data, args[0], passFile)
			if err != nil {
				return err
			}
			rep, err := report(args[0], format, kp, enc, kind)
			if err != nil {
				return err
			}
			if rep.Warning != "" {
				logging.Warnf("%s", rep.Warning)
			}

			if output == outputYAML {
				return writeYAML(cmd.OutOrStdout(), rep)
			}
			printFields(cmd.OutOrStdout(), [][2]string{
				{i18n.T("inspect.file"), rep.File},
				{i18n.T("inspect.format"), rep.Format},
				{i18n.T("inspect.type"), rep.Type + " (" + rep.Algorithm + ")"},
				{i18n.T("inspect.bits"), strconv.Itoa(rep.Bits)},
				{i18n.T("inspect.comment"), rep.Comment},
				{i18n.T("inspect.private"), yesNo(rep.Private)},
				{i18n.T("inspect.encrypted"), yesNo(rep.Encrypted)},
				{i18n.T("inspect.fingerprint"), rep.Fingerprint},
				{i18n.T("inspect.public"), rep.PublicKey},
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&passFile, "passphrase-file", "", "read the passphrase from this file")
	cmd.Flags().StringVar(&hash, "hash", "sha256", "fingerprint hash (sha256, sha512, md5)")
	addOutputFlag(cmd, &output)
	return cmd
}

func report(file string, format sshkey.Format, kp *keypair.KeyPair, enc bool, kind fingerprint.HashKind) (keyReport, error) {
	fp, err := kp.Fingerprint(kind)
	if err != nil {
		return keyReport{}, err
	}
	return keyReport{
		File:        file,
		Format:      format.String(),
		Type:        kp.Type().String(),
		Algorithm:   kp.Key().Name(),
		Bits:        kp.Size(),
		Comment:     kp.Comment(),
		Private:     format.IsPrivate(),
		Encrypted:   enc,
		Fingerprint: fp.String(),
		PublicKey:   strings.TrimSpace(kp.PublicString()),
		Warning:     sshkey.CheckAlgorithm(kp.Key()),
	}, nil
}

func yesNo(b bool) string {
	if b {
		return i18n.T("inspect.yes")
	}
	return i18n.T("inspect.no")
}

func (a *app) newFingerprintCmd() *cobra.Command {
	var (
		passFile string
		hash     string
		visual   bool
	)
	cmd := &cobra.Command{
		Use:   "fingerprint <file>",
		Short: "Print the fingerprint of a key",
		Long: `Prints "<bits> <fingerprint> <comment> (<type>)" like ssh-keygen -l.
With --visual the randomart image follows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := a.hashKind(cmd, hash)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			kp, _, err := loadPublic(cmd, data, args[0], passFile)
			if err != nil {
				return err
			}
			fp, err := kp.Fingerprint(kind)
			if err != nil {
				return err
			}
			comment := kp.Comment()
			if comment == "" {
				comment = i18n.T("fingerprint.no_comment")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d %s %s (%s)\n", kp.Size(), fp, comment, kp.Type())
			if visual {
				fmt.Fprintln(out, fp.Art(kp.Type().String(), kp.Size()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&passFile, "passphrase-file", "", "read the passphrase from this file")
	cmd.Flags().StringVar(&hash, "hash", "sha256", "fingerprint hash (sha256, sha512, md5)")
	cmd.Flags().BoolVarP(&visual, "visual", "v", false, "also print the randomart image")
	return cmd
}
