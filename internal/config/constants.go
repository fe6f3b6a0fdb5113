package config

// Lua schema field names and globals
const (
	luaGlobalShelldisc = "shelldisc"
	luaGlobalRegistry  = "registry"

	luaFieldSystemRoot = "system_root"
	luaFieldSnapshot   = "snapshot"
	luaFieldPlatform   = "platform"
	luaFieldOS         = "os"
	luaFieldBuild      = "build"
	luaFieldEnv        = "env"
	luaFieldLogLevel   = "log_level"

	luaFieldPath   = "path"
	luaFieldValues = "values"
)

// Environment variables
const (
	// EnvConfig overrides the config file location
	EnvConfig = "SHELLDISC_CONFIG"

	// EnvDebug enables debug logging when set to 1 or true
	EnvDebug = "SHELLDISC_DEBUG"

	// EnvWindir and EnvSystemRoot report the Windows directory, in order of preference
	EnvWindir     = "windir"
	EnvSystemRoot = "SystemRoot"
)

// Limits
const (
	// MaxSnapshotKeys bounds the number of keys a snapshot may define
	MaxSnapshotKeys = 4096

	// MaxEnvVars bounds the number of extra environment variables
	MaxEnvVars = 128
)

// DefaultFileName is the config file name under the user config directory
const DefaultFileName = "shelldisc.lua"
