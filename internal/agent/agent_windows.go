//go:build windows
// +build windows

// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package agent

import (
	"fmt"
	"os"

	"github.com/Microsoft/go-winio"
	"github.com/davidmz/go-pageant"
	"golang.org/x/crypto/ssh/agent"
)

const defaultPipe = `\\.\pipe\openssh-ssh-agent`

// Connect prefers a running Pageant and falls back to the OpenSSH agent
// named pipe from SSH_AUTH_SOCK or its default location. The caller closes
// the returned Conn.
func Connect() (*Conn, error) {
	if pageant.Available() {
		return NewConn(pageant.New(), nil), nil
	}

	pipe := os.Getenv("SSH_AUTH_SOCK")
	if pipe == "" {
		pipe = defaultPipe
	}
	conn, err := winio.DialPipe(pipe, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoAgent, pipe, err)
	}
	return NewConn(agent.NewClient(conn), conn), nil
}
