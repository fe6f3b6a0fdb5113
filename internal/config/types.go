package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Config represents the complete shelldisc configuration.
type Config struct {
	// SystemRoot overrides %windir% when building launcher paths
	SystemRoot string `json:"system_root,omitempty"`

	// Snapshot is a Lua registry snapshot used instead of the live registry
	Snapshot string `json:"snapshot,omitempty"`

	// Platform overrides detected host properties
	Platform PlatformOverride `json:"platform,omitempty"`

	// Env is merged into every discovered shell's environment
	Env map[string]string `json:"env,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level,omitempty"`
}

// PlatformOverride replaces detected platform fields when set.
type PlatformOverride struct {
	OS    string `json:"os,omitempty"`
	Build int    `json:"build,omitempty"`
}

var (
	// windowsPathPattern matches drive-absolute (C:\x) and UNC (\\server\share) paths
	windowsPathPattern = regexp.MustCompile(`^([A-Za-z]:[\\/]|\\\\[^\\]+\\)`)

	// osPattern matches GOOS-style identifiers
	osPattern = regexp.MustCompile(`^[a-z0-9]+$`)

	validLogLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
)

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if c.SystemRoot != "" && !windowsPathPattern.MatchString(c.SystemRoot) {
		return &ValidationError{
			Field:   luaFieldSystemRoot,
			Message: fmt.Sprintf("must be an absolute Windows path (got %q)", c.SystemRoot),
		}
	}

	if c.Platform.OS != "" && !osPattern.MatchString(c.Platform.OS) {
		return &ValidationError{
			Field:   "platform.os",
			Message: fmt.Sprintf("invalid OS identifier %q", c.Platform.OS),
		}
	}

	if c.Platform.Build < 0 {
		return &ValidationError{
			Field:   "platform.build",
			Message: fmt.Sprintf("build cannot be negative (got %d)", c.Platform.Build),
		}
	}

	if len(c.Env) > MaxEnvVars {
		return &ValidationError{
			Field:   luaFieldEnv,
			Message: fmt.Sprintf("too many variables (%d), maximum is %d", len(c.Env), MaxEnvVars),
		}
	}
	for name := range c.Env {
		if err := validateEnvName(name); err != nil {
			return &ValidationError{Field: luaFieldEnv + "." + name, Message: err.Error()}
		}
	}

	if !validLogLevels[c.LogLevel] {
		return &ValidationError{
			Field:   luaFieldLogLevel,
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn or error)", c.LogLevel),
		}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateEnvName rejects names a process environment cannot carry.
func validateEnvName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("variable name %q cannot contain '=' or NUL", name)
	}
	return nil
}
