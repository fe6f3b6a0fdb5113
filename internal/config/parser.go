package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	fs       afero.Fs
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithFs reads config and snapshot files from fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) ParserOption {
	return func(p *Parser) {
		p.fs = fsys
	}
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform table undefined in configs.
func NewParser(detector platform.Detector, opts ...ParserOption) *Parser {
	p := &Parser{detector: detector, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L, err := newSandboxedVM()
	if err != nil {
		return nil, err
	}
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseFile parses the Lua config at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		return nil, err
	}
	if cfg.Snapshot != "" && !filepath.IsAbs(cfg.Snapshot) {
		cfg.Snapshot = filepath.Join(filepath.Dir(path), cfg.Snapshot)
	}
	return cfg, nil
}

// Load reads the config at path. An empty path means DefaultPath; a missing
// file at the default location yields an empty Config, while a missing file
// that was asked for explicitly is an error.
func (p *Parser) Load(ctx context.Context, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		def, fromEnv, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path, explicit = def, fromEnv
	}

	cfg, err := p.ParseFile(ctx, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the config file location: $SHELLDISC_CONFIG when set,
// otherwise shelldisc/shelldisc.lua under the user config directory. fromEnv
// reports whether the path came from the environment.
func DefaultPath() (path string, fromEnv bool, err error) {
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false, fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, "shelldisc", DefaultFileName), false, nil
}

// ResolveSystemRoot picks the Windows directory used to build launcher paths.
// Precedence: flag, config, %windir%, %SystemRoot%, then the empty string,
// which callers treat as C:\Windows.
func ResolveSystemRoot(flag string, cfg *Config, getenv func(string) string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.SystemRoot); v != "" {
			return v
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range []string{EnvWindir, EnvSystemRoot} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// extractConfig extracts the config from a Lua state.
// It expects a global "shelldisc" table.
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalShelldisc)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'shelldisc' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}
	table := root.(*lua.LTable)

	cfg := &Config{}
	var err error

	if cfg.SystemRoot, err = optionalString(table, luaFieldSystemRoot); err != nil {
		return nil, err
	}
	if cfg.Snapshot, err = optionalString(table, luaFieldSnapshot); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = optionalString(table, luaFieldLogLevel); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	switch v := table.RawGetString(luaFieldPlatform); v.Type() {
	case lua.LTNil:
	case lua.LTTable:
		if cfg.Platform, err = extractPlatform(v.(*lua.LTable)); err != nil {
			return nil, err
		}
	default:
		return nil, fieldTypeError(luaFieldPlatform, "table", v)
	}

	switch v := table.RawGetString(luaFieldEnv); v.Type() {
	case lua.LTNil:
	case lua.LTTable:
		if cfg.Env, err = extractEnv(v.(*lua.LTable)); err != nil {
			return nil, err
		}
	default:
		return nil, fieldTypeError(luaFieldEnv, "table", v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
			Err:     err,
		}
	}

	return cfg, nil
}

// extractPlatform extracts the platform override table.
func extractPlatform(table *lua.LTable) (PlatformOverride, error) {
	var out PlatformOverride

	osName, err := optionalString(table, luaFieldOS)
	if err != nil {
		return out, err
	}
	out.OS = strings.ToLower(osName)

	switch v := table.RawGetString(luaFieldBuild); v.Type() {
	case lua.LTNil:
	case lua.LTNumber:
		n := float64(v.(lua.LNumber))
		if n != float64(int(n)) {
			return out, &ParseError{
				Message: "invalid field 'platform.build'",
				Detail:  fmt.Sprintf("expected an integer, got %v", n),
			}
		}
		out.Build = int(n)
	default:
		return out, fieldTypeError("platform."+luaFieldBuild, "number", v)
	}

	return out, nil
}

// extractEnv extracts string-keyed environment variables. Numbers are
// accepted as values and rendered as Lua prints them; nil values from
// platform conditionals are dropped.
func extractEnv(table *lua.LTable) (map[string]string, error) {
	env := make(map[string]string)
	var err error

	table.ForEach(func(key, value lua.LValue) {
		if err != nil {
			return
		}
		if key.Type() != lua.LTString {
			err = fieldTypeError(luaFieldEnv+" key", "string", key)
			return
		}
		switch value.Type() {
		case lua.LTString, lua.LTNumber:
			env[key.String()] = value.String()
		default:
			err = fieldTypeError(luaFieldEnv+"."+key.String(), "string", value)
		}
	})
	if err != nil {
		return nil, err
	}
	return env, nil
}

// optionalString returns the string field name of table, or "" when it is nil.
func optionalString(table *lua.LTable, name string) (string, error) {
	v := table.RawGetString(name)
	switch v.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return v.String(), nil
	default:
		return "", fieldTypeError(name, "string", v)
	}
}

func fieldTypeError(field, want string, got lua.LValue) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("invalid field '%s'", field),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
