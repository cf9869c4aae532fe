// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs every executed command.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs lifecycle events.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs recoverable problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidPort is returned for SSH ports outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidHistoryLimit is returned for a negative history limit.
	ErrInvalidHistoryLimit = errors.New("invalid history limit")
	// ErrInvalidIdentity is returned for a blank user or host name.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the prompt and banner palette.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the application loggers.
	LogLevel string

	// InvalidLogLevelError wraps ErrInvalidLogLevel.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects every field error found by Validate. It
	// wraps ErrInvalidConfig.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SandboxRoot is the host directory sessions are confined to. Empty
		// means the current working directory.
		SandboxRoot string `json:"sandbox_root" mapstructure:"sandbox_root" yaml:"sandbox_root"`
		// HistoryLimit caps remembered command lines; 0 keeps everything.
		HistoryLimit int `json:"history_limit" mapstructure:"history_limit" yaml:"history_limit"`
		// LogLevel is the minimum level for diagnostics on stderr.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" yaml:"log_level"`
		// Identity is the simulated login.
		Identity IdentityConfig `json:"identity" mapstructure:"identity" yaml:"identity"`
		// UI configures the interactive front end.
		UI UIConfig `json:"ui" mapstructure:"ui" yaml:"ui"`
		// SSH configures `sandterm serve`.
		SSH SSHConfig `json:"ssh" mapstructure:"ssh" yaml:"ssh"`
	}

	// IdentityConfig names the simulated user and machine.
	IdentityConfig struct {
		User     string `json:"user" mapstructure:"user" yaml:"user"`
		Hostname string `json:"hostname" mapstructure:"hostname" yaml:"hostname"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" yaml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`
		// Welcome prints the banner when a session starts
		Welcome bool `json:"welcome" mapstructure:"welcome" yaml:"welcome"`
	}

	// SSHConfig configures the SSH front end.
	SSHConfig struct {
		Host string `json:"host" mapstructure:"host" yaml:"host"`
		Port int    `json:"port" mapstructure:"port" yaml:"port"`
		// HostKeyPath is created on first start when missing.
		HostKeyPath string `json:"host_key_path" mapstructure:"host_key_path" yaml:"host_key_path"`
		// Password, when set, is required from every client.
		Password string `json:"password" mapstructure:"password" yaml:"password"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit: 1000,
		LogLevel:     LogLevelWarn,
		Identity: IdentityConfig{
			User:     "user",
			Hostname: "terminal",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Welcome:     true,
		},
		SSH: SSHConfig{
			Host:        "localhost",
			Port:        2222,
			HostKeyPath: ".ssh/sandterm_ed25519",
		},
	}
}

// IsValid reports whether c is a known color scheme.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts l to a charmbracelet/log level, defaulting to warn.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelInfo:
		return log.InfoLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate checks every field and returns an *InvalidConfigError listing
// all problems, or nil.
func (c *Config) Validate() error {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.LogLevel.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidHistoryLimit, c.HistoryLimit))
	}
	if strings.TrimSpace(c.Identity.User) == "" {
		errs = append(errs, fmt.Errorf("%w: user must not be empty", ErrInvalidIdentity))
	}
	if strings.TrimSpace(c.Identity.Hostname) == "" {
		errs = append(errs, fmt.Errorf("%w: hostname must not be empty", ErrInvalidIdentity))
	}
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, c.SSH.Port))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
