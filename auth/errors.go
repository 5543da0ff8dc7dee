package auth

import "errors"

// Credential errors.
var (
	// ErrNoToken indicates no token was found in the environment.
	ErrNoToken = errors.New("no token in environment")

	// ErrNoSSHAgent indicates SSH_AUTH_SOCK is unset or unreachable.
	ErrNoSSHAgent = errors.New("ssh-agent not available")

	// ErrNoAgentKeys indicates the ssh-agent holds no keys.
	ErrNoAgentKeys = errors.New("ssh-agent has no keys")

	// ErrInvalidKey indicates the GitHub App private key could not be
	// parsed.
	ErrInvalidKey = errors.New("invalid private key")
)
