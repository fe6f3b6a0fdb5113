// Package testutil provides utilities for testing shelldisc in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv isolates a test from the user's shelldisc configuration and
// from the host's Windows directory variables. It returns the directory that
// os.UserConfigDir reports for the rest of the test.
//
// The cleanup function is automatically handled by t.TempDir(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "config")
	homeDir := filepath.Join(tmpDir, "home")

	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("HOME", homeDir)
	t.Setenv("AppData", configDir)

	// An empty value means unset to every reader in shelldisc
	t.Setenv("SHELLDISC_CONFIG", "")
	t.Setenv("SHELLDISC_DEBUG", "")
	t.Setenv("windir", "")
	t.Setenv("SystemRoot", "")

	for _, dir := range []string{configDir, homeDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("os.UserConfigDir() after setup: %v", err)
	}
	return dir
}

// WriteConfig writes a shelldisc.lua under the config directory returned by
// SetupTestEnv and returns its path.
func WriteConfig(t *testing.T, configDir, code string) string {
	t.Helper()

	path := filepath.Join(configDir, "shelldisc", "shelldisc.lua")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
