// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/toeirei/sshkeys/internal/i18n"
	"github.com/toeirei/sshkeys/internal/logging"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// clipboardWrite is a package-level variable so tests can replace it.
var clipboardWrite = clipboard.WriteAll

func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "output", outputText, `output format ("text" or "yaml")`)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// labelStyle renders bold labels when w is a terminal and plain text
// otherwise.
func labelStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true)
}

// printFields writes label/value rows; empty values are skipped.
func printFields(w io.Writer, rows [][2]string) {
	style := labelStyle(w)
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", style.Render(fmt.Sprintf("%-15s", r[0]+":")), r[1])
	}
}

// writeResult writes data to path, or to the command output when path is
// empty or "-". Private material is written with 0600.
func writeResult(cmd *cobra.Command, path string, data []byte, private bool) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	mode := os.FileMode(0o644)
	if private {
		mode = 0o600
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("could not create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, mode)
}

// copyToClipboard is best effort: headless systems have no clipboard.
func copyToClipboard(cmd *cobra.Command, text string) {
	if err := clipboardWrite(text); err != nil {
		logging.Warnf("%s", i18n.T("clipboard.failed", err))
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("clipboard.copied"))
}
