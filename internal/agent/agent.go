// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package agent loads decoded keys into a running ssh-agent (or Pageant on
// Windows).
package agent

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/toeirei/sshkeys/core/keypair"
	"github.com/toeirei/sshkeys/internal/logging"
	"golang.org/x/crypto/ssh/agent"
)

// ErrNoAgent is returned when no agent can be reached.
var ErrNoAgent = errors.New("no ssh agent available")

// Conn is an agent client and the connection it talks over.
type Conn struct {
	agent.Agent
	conn io.Closer
}

// NewConn pairs ag with the connection to release on Close. conn may be nil
// for agents that hold no connection, such as Pageant.
func NewConn(ag agent.Agent, conn io.Closer) *Conn {
	return &Conn{Agent: ag, conn: conn}
}

// Close releases the underlying connection.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// AddOptions are the constraints attached to an added identity.
type AddOptions struct {
	Lifetime time.Duration
	Confirm  bool
}

// Add hands the private half of kp to ag.
func Add(ag agent.Agent, kp *keypair.KeyPair, opts AddOptions) error {
	priv, err := kp.CryptoPrivateKey()
	if err != nil {
		return err
	}
	added := agent.AddedKey{
		PrivateKey:       priv,
		Comment:          kp.Comment(),
		ConfirmBeforeUse: opts.Confirm,
	}
	if opts.Lifetime > 0 {
		added.LifetimeSecs = uint32(opts.Lifetime / time.Second)
	}
	if err := ag.Add(added); err != nil {
		return fmt.Errorf("add %s key to agent: %w", kp.Type(), err)
	}
	logging.Debugf("added %s key %q to agent", kp.Type(), kp.Comment())
	return nil
}

// Has reports whether ag already holds the public half of kp.
func Has(ag agent.Agent, kp *keypair.KeyPair) (bool, error) {
	pub, err := kp.SSHPublicKey()
	if err != nil {
		return false, err
	}
	ids, err := ag.List()
	if err != nil {
		return false, fmt.Errorf("list agent keys: %w", err)
	}
	want := pub.Marshal()
	for _, id := range ids {
		if bytes.Equal(id.Blob, want) {
			return true, nil
		}
	}
	return false, nil
}

// Remove deletes the identity matching kp from ag.
func Remove(ag agent.Agent, kp *keypair.KeyPair) error {
	pub, err := kp.SSHPublicKey()
	if err != nil {
		return err
	}
	if err := ag.Remove(pub); err != nil {
		return fmt.Errorf("remove %s key from agent: %w", kp.Type(), err)
	}
	return nil
}
