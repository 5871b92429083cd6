// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the shared structured logger. Library code only logs
// at debug level; the CLI decides what reaches the terminal.
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. It starts at warn level so importing the
// library stays quiet.
var L = newLogger(os.Stderr)

func newLogger(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{Prefix: "sshkeys"})
	l.SetLevel(clog.WarnLevel)
	return l
}

// SetOutput redirects L to w, keeping the current level.
func SetOutput(w io.Writer) {
	lvl := L.GetLevel()
	L = newLogger(w)
	L.SetLevel(lvl)
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.WarnLevel)
}

// SetLevel parses a level name such as "debug" or "info".
func SetLevel(name string) error {
	lvl, err := clog.ParseLevel(name)
	if err != nil {
		return err
	}
	L.SetLevel(lvl)
	return nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
