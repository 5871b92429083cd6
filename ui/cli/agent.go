// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/core/fingerprint"
	sshagent "github.com/toeirei/sshkeys/internal/agent"
	"github.com/toeirei/sshkeys/internal/i18n"
	"golang.org/x/crypto/ssh/agent"
)

// connectAgent is a package-level variable so tests can inject a keyring.
var connectAgent = sshagent.Connect

func (a *app) newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Work with a running ssh-agent",
	}
	cmd.AddCommand(a.newAgentAddCmd())
	return cmd
}

func (a *app) newAgentAddCmd() *cobra.Command {
	var (
		passFile string
		lifetime time.Duration
		confirm  bool
	)
	cmd := &cobra.Command{
		Use:   "add <private-key>...",
		Short: "Load private keys into the ssh-agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := connectAgent()
			if err != nil {
				return err
			}
			defer func() { _ = ag.Close() }()
			for _, path := range args {
				if err := addToAgent(cmd, ag, path, passFile, sshagent.AddOptions{Lifetime: lifetime, Confirm: confirm}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&passFile, "passphrase-file", "", "read the passphrase from this file")
	cmd.Flags().DurationVar(&lifetime, "lifetime", 0, "remove the identity after this duration")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "require confirmation before each use")
	return cmd
}

func addToAgent(cmd *cobra.Command, ag agent.Agent, path, passFile string, opts sshagent.AddOptions) error {
	kp, err := loadKey(cmd, path, passFile)
	if err != nil {
		return err
	}
	if err := sshagent.Add(ag, kp, opts); err != nil {
		return err
	}
	fp, err := kp.Fingerprint(fingerprint.SHA256)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("agent.added", fp, path))
	return nil
}
