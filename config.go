// FILE: lixenwraith/unilog/config.go
package unilog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all target configuration values
type Config struct {
	// Naming
	Name       string `toml:"name"` // Application name, the base of every logfile name
	Directory  string `toml:"directory"`
	RelativeTo string `toml:"relative_to"` // "cwd", "home", "exe"; empty requires an absolute directory
	Postfix    string `toml:"postfix"`     // Naming scheme, e.g. "day", "log_day", "dot_number_daily"
	Mode       string `toml:"mode"`        // "single", "single_thread", "multi", "multi_thread", "multi_process"

	// Formatting
	TimestampFormat string `toml:"timestamp_format"` // Go time layout
	SeverityStyle   string `toml:"severity_style"`   // "chars3", "chars5_tab", "chars9_brackets", ...
	LineEnding      string `toml:"line_ending"`      // "default", "lf", "crlf", "cr"
	Colour          string `toml:"colour"`           // "auto", "always", "never"
	Sanitize        bool   `toml:"sanitize"`         // Hex-encode non-printable characters

	// Default pipeline
	EnableEcho       bool  `toml:"enable_echo"`        // Mirror lines to stdout
	DisableFile      bool  `toml:"disable_file"`       // No write, flush or rotate processors
	FlushEveryEvents int64 `toml:"flush_every_events"` // 0 flushes after every event
	RunOnStartup     bool  `toml:"run_on_startup"`     // Run every processor on the first event

	// Rotation
	KeepUncompressed int64 `toml:"keep_uncompressed"` // Newest files left uncompressed; 0 disables compression
	KeepFiles        int64 `toml:"keep_files"`        // Newest files kept; 0 disables removal
	MaxFilesPerRun   int64 `toml:"max_files_per_run"` // Candidates considered per rotation run
	UseTrash         bool  `toml:"use_trash"`         // Move to trash instead of deleting

	// Logging goroutine
	ThreadPriority string `toml:"thread_priority"` // "idle", "lowest", "below_normal", "normal", ...

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Name:       "app",
	Directory:  "logs",
	RelativeTo: "cwd",
	Postfix:    "day",
	Mode:       "multi_thread",

	TimestampFormat: defaultTimestampFormat,
	SeverityStyle:   "chars3",
	LineEnding:      "default",
	Colour:          "auto",
	Sanitize:        false,

	EnableEcho:       false,
	DisableFile:      false,
	FlushEveryEvents: 0,
	RunOnStartup:     false,

	KeepUncompressed: 0,
	KeepFiles:        30,
	MaxFilesPerRun:   1000,
	UseTrash:         false,

	ThreadPriority: "normal",

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [unilog] table of a TOML file
// and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()
	if err := loader.RegisterStruct("unilog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// A missing file leaves the defaults in place
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "unilog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extractConfig copies loaded values into cfg by toml tag
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}
		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}
	return nil
}

// configFields maps toml tags to the fields of cfg
func configFields(cfg *Config) map[string]reflect.Value {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fields := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("toml"); tag != "" {
			fields[tag] = v.Field(i)
		}
	}
	return fields
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	fields := configFields(cfg)
	for key, value := range overrides {
		fieldValue, exists := fields[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			// TOML decoders may hand back whole numbers as floats
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}
	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmtErrorf("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmtErrorf("name cannot contain path separators: '%s'", c.Name)
	}
	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}
	switch strings.ToLower(c.RelativeTo) {
	case "", "cwd", "home", "exe":
	default:
		return fmtErrorf("invalid relative_to: '%s' (use cwd, home, exe)", c.RelativeTo)
	}

	if _, err := ParsePostfix(c.Postfix); err != nil {
		return err
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := ParseSeverityStyle(c.SeverityStyle); err != nil {
		return err
	}
	if _, err := ParseLineEnding(c.LineEnding); err != nil {
		return err
	}
	if _, err := ParseThreadPriority(c.ThreadPriority); err != nil {
		return err
	}
	switch c.Colour {
	case "auto", "always", "never":
	default:
		return fmtErrorf("invalid colour: '%s' (use auto, always, never)", c.Colour)
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.FlushEveryEvents < 0 {
		return fmtErrorf("flush_every_events cannot be negative: %d", c.FlushEveryEvents)
	}
	if c.KeepUncompressed < 0 || c.KeepFiles < 0 {
		return fmtErrorf("keep counts cannot be negative")
	}
	if c.MaxFilesPerRun <= 0 {
		return fmtErrorf("max_files_per_run must be positive: %d", c.MaxFilesPerRun)
	}

	// Uncompressed files are a subset of kept files
	if c.KeepFiles > 0 && c.KeepUncompressed > c.KeepFiles {
		return fmtErrorf("keep_uncompressed (%d) cannot be greater than keep_files (%d)",
			c.KeepUncompressed, c.KeepFiles)
	}
	if c.KeepFiles > 0 && c.KeepFiles >= c.MaxFilesPerRun {
		return fmtErrorf("keep_files (%d) must be less than max_files_per_run (%d)",
			c.KeepFiles, c.MaxFilesPerRun)
	}
	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
