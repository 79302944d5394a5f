// Package config loads layered configuration: embedded defaults,
// then an optional user file, then environment overrides. Later
// layers win per key.
package config

import (
	_ "embed"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/tela/pkg/errors"
	"github.com/arthur-debert/tela/pkg/logging"
)

//go:embed defaults.toml
var defaultConfig []byte

// userConfigName is looked up under the XDG config directories
const userConfigName = "tela/tela.toml"

// Output holds rendering defaults
type Output struct {
	// Mode is the default output mode name
	Mode string `koanf:"mode"`
	// Theme names the theme to load
	Theme string `koanf:"theme"`
	// Width forces a layout width; 0 means detect
	Width int `koanf:"width"`
}

// Paths holds search directories for file-backed resources
type Paths struct {
	TemplateDirs []string `koanf:"template_dirs"`
	ThemeDirs    []string `koanf:"theme_dirs"`
}

type Config struct {
	Output Output `koanf:"output"`
	Paths  Paths  `koanf:"paths"`
	// Debug re-reads file-backed resources on every access
	Debug bool `koanf:"debug"`
}

// Load builds the configuration. userPath overrides the XDG lookup
// when non-empty; a missing explicit file is an error, a missing XDG
// file is not.
func Load(userPath string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrParseError, "embedded defaults are malformed")
	}

	explicit := userPath != ""
	if !explicit {
		if found, err := xdg.SearchConfigFile(userConfigName); err == nil {
			userPath = found
		}
	}
	if userPath != "" {
		if _, err := os.Stat(userPath); err != nil {
			if explicit {
				return nil, errors.Wrapf(err, errors.ErrLoadError,
					"config file %s not readable", userPath)
			}
		} else if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrParseError,
				"config file %s is malformed", userPath)
		} else {
			logger.Debug().Str("path", userPath).Msg("user config loaded")
		}
	}

	applyEnv(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrParseError, "config unmarshal failed")
	}
	return &cfg, nil
}

// applyEnv overlays TELA_* environment variables
func applyEnv(k *koanf.Koanf) {
	set := func(key, env string) {
		if v := os.Getenv(env); v != "" {
			_ = k.Set(key, v)
		}
	}
	set("output.mode", "TELA_OUTPUT_MODE")
	set("output.theme", "TELA_THEME")
	if v := os.Getenv("TELA_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			_ = k.Set("output.width", n)
		}
	}
	if v := os.Getenv("TELA_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			_ = k.Set("debug", b)
		}
	}
}

// Default returns the embedded defaults with no user or env overlay
func Default() *Config {
	return &Config{
		Output: Output{Mode: "auto", Theme: "default"},
	}
}
