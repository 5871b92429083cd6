// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, loads configuration and wires logging
// and localisation before any subcommand runs.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/buildvars"
	"github.com/toeirei/sshkeys/config"
	"github.com/toeirei/sshkeys/internal/i18n"
	"github.com/toeirei/sshkeys/internal/logging"
)

// app carries the state shared by the commands of one root command.
type app struct {
	cfgFile  string
	language string
	debug    bool
	cfg      config.Config
}

// Execute runs the CLI entrypoint. The main package handles process exit.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errSignatureMismatch) {
		fmt.Fprintln(root.ErrOrStderr(), describeError(err))
	}
	return err
}

// NewRootCmd creates a fully wired root command. Each call returns
// independent state so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sshkeys",
		Short: "Inspect, convert, generate and use SSH keys.",
		Long: `sshkeys reads OpenSSH, PEM, PKCS#8 and RFC 4716 keys, converts between
them, prints fingerprints and randomart, and signs or verifies data.`,
		Version:           buildvars.Resolve(nil).String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().StringVar(&a.language, "language", "", `message language ("en", "de")`)
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		a.newInspectCmd(),
		a.newFingerprintCmd(),
		a.newConvertCmd(),
		a.newGenerateCmd(),
		a.newSignCmd(),
		a.newVerifyCmd(),
		a.newAgentCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads configuration and initialises logging and i18n.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logging.SetOutput(cmd.ErrOrStderr())

	path, err := a.configPathFromCli(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	if a.language != "" {
		a.cfg.Language = a.language
	}
	i18n.Init(a.cfg.Language)

	if a.cfg.LogLevel != "" {
		if err := logging.SetLevel(a.cfg.LogLevel); err != nil {
			logging.Warnf("ignoring log_level %q: %v", a.cfg.LogLevel, err)
		}
	}
	if a.debug {
		logging.SetDebug(true)
	}
	if path != nil {
		logging.Debugf("using config %s", *path)
	}
	return nil
}

// configPathFromCli returns the --config path when the flag was given.
func (a *app) configPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") || a.cfgFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(a.cfgFile); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &a.cfgFile, nil
}

func newVersionCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildvars.Resolve(nil)
			if output == outputYAML {
				return writeYAML(cmd.OutOrStdout(), info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", info.Version)
			fmt.Fprintf(out, "commit: %s\n", info.Commit)
			if info.Date != "" {
				fmt.Fprintf(out, "built: %s\n", info.Date)
			}
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
