// Package config loads the settings shared by the command-line tools.
//
// Settings are read from TOML files, later files overriding earlier ones:
//
//	$XDG_CONFIG_HOME/keylayout/config.toml
//	./keylayout.toml
//
// Example:
//
//	layout     = "~/Library/Keyboard Layouts/German.uchr"
//	kbd_type   = 40
//	trace      = "Info"
//	byte_order = "little"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/npillmayer/keylayout/uc"
	"github.com/npillmayer/schuko/tracing"
)

const appName = "keylayout"

// Config holds the tool settings.
type Config struct {
	Layout    string `koanf:"layout"`     // path of a raw 'uchr' resource
	KbdType   int    `koanf:"kbd_type"`   // keyboard type to decode the layout for
	Trace     string `koanf:"trace"`      // "Debug", "Info" or "Error"
	ByteOrder string `koanf:"byte_order"` // "native", "little" or "big"
}

// Load reads the settings from the default locations. Missing files are
// skipped.
func Load() (*Config, error) {
	return LoadFrom(Paths()...)
}

// LoadFrom reads the settings from the given files, in order. Missing files
// are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	cfg := &Config{
		Trace:     "Info",
		ByteOrder: "native",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Layout = expandPath(cfg.Layout)
	if _, err := cfg.ParseOptions(); err != nil {
		return nil, err
	}
	if _, err := cfg.TraceLevel(); err != nil {
		return nil, err
	}
	if cfg.KbdType < 0 {
		return nil, fmt.Errorf("invalid keyboard type %d", cfg.KbdType)
	}
	return cfg, nil
}

// Paths returns the default config file locations, lowest priority first.
func Paths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		appName + ".toml",
	}
}

// ParseOptions translates the byte order setting to decoder options.
func (c *Config) ParseOptions() ([]uc.ParseOption, error) {
	switch strings.ToLower(c.ByteOrder) {
	case "", "native":
		return nil, nil
	case "little", "le":
		return []uc.ParseOption{uc.LittleEndianData}, nil
	case "big", "be":
		return []uc.ParseOption{uc.BigEndianData}, nil
	}
	return nil, fmt.Errorf("invalid byte order %q", c.ByteOrder)
}

// TraceLevel translates the trace setting.
func (c *Config) TraceLevel() (tracing.TraceLevel, error) {
	switch strings.ToLower(c.Trace) {
	case "debug":
		return tracing.LevelDebug, nil
	case "", "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("invalid trace level: %s", c.Trace)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
