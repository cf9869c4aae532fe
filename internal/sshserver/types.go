// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandterm/sandterm/internal/shell"
)

const (
	// StateCreated indicates the server has been created but not started.
	StateCreated ServerState = iota
	// StateStarting indicates the server is in the process of starting.
	StateStarting
	// StateRunning indicates the server is running and accepting connections.
	StateRunning
	// StateStopping indicates the server is shutting down.
	StateStopping
	// StateStopped indicates the server has stopped (terminal state).
	StateStopped
	// StateFailed indicates the server failed to start (terminal state).
	StateFailed
)

var (
	// ErrInvalidSSHConfig is the sentinel error wrapped by InvalidSSHConfigError.
	ErrInvalidSSHConfig = errors.New("invalid SSH server config")
	// ErrNoShellFactory is returned by New when no ShellFactory is given.
	ErrNoShellFactory = errors.New("no shell factory")
)

type (
	// ServerState represents the lifecycle state of the server.
	ServerState int32

	// ShellFactory creates the shell for a new connection. user is the SSH
	// login name.
	ShellFactory func(user string) (*shell.Shell, error)

	// Config holds immutable configuration for the SSH server.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1).
		Host string
		// Port is the port to listen on (0 = auto-select).
		Port int
		// HostKeyPath is the ed25519 host key, generated when missing. Empty
		// uses a key that lives only as long as the process.
		HostKeyPath string
		// Password, when set, is required from every client.
		Password string
		// IdleTimeout disconnects silent clients (0 = never).
		IdleTimeout time.Duration
		// ShutdownTimeout bounds graceful shutdown (default: 10s).
		ShutdownTimeout time.Duration
		// StartupTimeout bounds Start (default: 5s).
		StartupTimeout time.Duration
		// REPL configures the interactive front end of each session.
		REPL shell.REPLConfig
	}

	// InvalidSSHConfigError collects field errors found by Config.Validate.
	InvalidSSHConfigError struct {
		FieldErrors []error
	}
)

// String returns a human-readable representation of the server state.
func (s ServerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		ShutdownTimeout: 10 * time.Second,
		StartupTimeout:  5 * time.Second,
	}
}

// Validate checks the host and port.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 0-65535", c.Port))
	}
	if len(errs) > 0 {
		return &InvalidSSHConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidSSHConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid SSH server config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidSSHConfig for errors.Is() compatibility.
func (e *InvalidSSHConfigError) Unwrap() error { return ErrInvalidSSHConfig }
