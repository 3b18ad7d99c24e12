// Package config loads fidel's settings from a TOML file, the environment
// and flags, and watches layout files for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// PathEnv overrides the config file location.
	PathEnv = "FIDEL_CONFIG"
	// LayoutEnv overrides the layout file.
	LayoutEnv = "FIDEL_LAYOUT"
	// LogFileEnv overrides the log file.
	LogFileEnv = "FIDEL_LOG_FILE"
	// DefaultRelPath is the config file location relative to the home dir.
	DefaultRelPath = ".config/fidel/config.toml"
	// DefaultBusName is the D-Bus name requested when none is configured.
	DefaultBusName = "org.fidel.Keyboard"
)

// Config is the merged program configuration.
type Config struct {
	// Layout is a layout file path. Empty selects the built-in Amharic
	// layout.
	Layout string `toml:"layout"`
	// Fields names the text fields created at startup.
	Fields    []string        `toml:"fields"`
	LogFile   string          `toml:"log_file"`
	Keyboard  KeyboardConfig  `toml:"keyboard"`
	DBus      DBusConfig      `toml:"dbus"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// KeyboardConfig holds the keyboard panel's initial state.
type KeyboardConfig struct {
	Visible   bool `toml:"visible"`
	Minimized bool `toml:"minimized"`
	MinWidth  int  `toml:"min_width"`
	MaxWidth  int  `toml:"max_width"`
}

type DBusConfig struct {
	Enabled bool   `toml:"enabled"`
	Name    string `toml:"name"`
}

type TelemetryConfig struct {
	ServiceName string `toml:"service_name"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Fields: []string{"main"},
		Keyboard: KeyboardConfig{
			Visible:  true,
			MinWidth: 40,
			MaxWidth: 120,
		},
		DBus:      DBusConfig{Name: DefaultBusName},
		Telemetry: TelemetryConfig{ServiceName: "fidel"},
	}
}

// DefaultPath returns $FIDEL_CONFIG, or ~/.config/fidel/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultRelPath), nil
}

// Load reads the config file at path over the defaults and applies
// environment overrides. A missing file is not an error. Unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		cfg.Layout = resolve(filepath.Dir(path), cfg.Layout)
		cfg.LogFile = resolve(filepath.Dir(path), cfg.LogFile)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces file values with FIDEL_* environment values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(LayoutEnv); v != "" {
		c.Layout = v
	}
	if v := os.Getenv(LogFileEnv); v != "" {
		c.LogFile = v
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var problems []string
	if c.Keyboard.MinWidth <= 0 {
		problems = append(problems, fmt.Sprintf("keyboard.min_width must be positive, got %d", c.Keyboard.MinWidth))
	}
	if c.Keyboard.MaxWidth < c.Keyboard.MinWidth {
		problems = append(problems, fmt.Sprintf("keyboard.max_width %d is below min_width %d", c.Keyboard.MaxWidth, c.Keyboard.MinWidth))
	}
	if c.DBus.Enabled && c.DBus.Name == "" {
		problems = append(problems, "dbus.name is required when dbus is enabled")
	}
	for i, f := range c.Fields {
		if strings.TrimSpace(f) == "" {
			problems = append(problems, fmt.Sprintf("fields[%d] is empty", i))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// resolve makes a relative path from the config file relative to its dir,
// and expands a leading ~.
func resolve(dir, p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
