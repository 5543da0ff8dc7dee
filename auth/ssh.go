package auth

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/crypto/ssh/agent"
)

// SSHAgentCheck verifies an ssh-agent is reachable and holds at least
// one key. Run before git operations over SSH URLs so a missing agent
// fails with a clear message instead of a hung credential prompt.
func SSHAgentCheck() error {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return ErrNoSSHAgent
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoSSHAgent, err)
	}
	defer conn.Close()

	keys, err := agent.NewClient(conn).List()
	if err != nil {
		return fmt.Errorf("list agent keys: %w", err)
	}
	if len(keys) == 0 {
		return ErrNoAgentKeys
	}
	return nil
}
