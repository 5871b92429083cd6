//go:build !windows
// +build !windows

// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package agent

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/crypto/ssh/agent"
)

// Connect dials the agent named by SSH_AUTH_SOCK. The caller closes the
// returned Conn.
func Connect() (*Conn, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, ErrNoAgent
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, fmt.Errorf("dial ssh agent %s: %w", sock, err)
	}
	return NewConn(agent.NewClient(conn), conn), nil
}
