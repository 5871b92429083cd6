// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/config"
	"github.com/toeirei/sshkeys/core/encryption"
	"github.com/toeirei/sshkeys/core/fingerprint"
	"github.com/toeirei/sshkeys/core/keyerr"
	"github.com/toeirei/sshkeys/core/sshkey"
	"github.com/toeirei/sshkeys/internal/i18n"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}

	var (
		system bool
		path   string
		force  bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfig(a.cfg); err != nil {
				return err
			}
			target := path
			if target == "" {
				p, err := config.GetConfigPath(system)
				if err != nil {
					return err
				}
				target = p
			}
			if _, err := os.Stat(target); err == nil && !force {
				return keyerr.New(keyerr.InvalidArgument, "cli.config", "%s", i18n.T("config.exists", target))
			}
			if err := config.WriteConfigTo(&a.cfg, target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.written", target))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "write the system-wide file instead of the user file")
	initCmd.Flags().StringVar(&path, "path", "", "write to this file")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeYAML(cmd.OutOrStdout(), a.cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

// validateConfig rejects values the export and fingerprint code would fail
// on later.
func validateConfig(c config.Config) error {
	if _, err := encryption.LookupCipher(c.Export.Cipher); err != nil {
		return err
	}
	if c.Export.Rounds <= 0 {
		return keyerr.New(keyerr.InvalidArgument, "cli.config", "export.rounds must be positive")
	}
	if _, err := sshkey.ParseFormat(c.Export.Format); err != nil {
		return err
	}
	if _, err := fingerprint.ParseHashKind(c.Fingerprint.Hash); err != nil {
		return err
	}
	if _, ok := i18n.GetAvailableLocales()[c.Language]; !ok {
		return keyerr.New(keyerr.InvalidArgument, "cli.config", "unknown language %q", c.Language)
	}
	return nil
}
