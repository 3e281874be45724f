// Package config loads overtype settings from overtype.yaml and OVERTYPE_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. OVERTYPE_PREVIEW_MODE.
const EnvPrefix = "OVERTYPE"

// ErrInvalid marks a config value that loaded but cannot be used.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	PreviewMode       bool            `mapstructure:"preview_mode"`
	ShowActiveLineRaw bool            `mapstructure:"show_active_line_raw"`
	SmartLists        bool            `mapstructure:"smart_lists"`
	RenumberDelay     time.Duration   `mapstructure:"renumber_delay"`
	TabWidth          int             `mapstructure:"tab_width"`
	Highlight         HighlightConfig `mapstructure:"highlight"`
	LogFile           string          `mapstructure:"log_file"`
	LogLevel          string          `mapstructure:"log_level"`
}

// HighlightConfig controls fenced code highlighting.
type HighlightConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Style   string `mapstructure:"style"` // chroma style name
}

// LoadOptions selects where Load looks.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Dirs are searched for overtype.yaml when File is empty. Nil means the
	// working directory followed by DefaultDir.
	Dirs []string
}

// DefaultDir is $XDG_CONFIG_HOME/overtype, falling back to the user config dir.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "overtype"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config dir: %w", err)
	}
	return filepath.Join(dir, "overtype"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("preview_mode", false)
	v.SetDefault("show_active_line_raw", false)
	v.SetDefault("smart_lists", true)
	v.SetDefault("renumber_delay", 10*time.Millisecond)
	v.SetDefault("tab_width", 4)
	v.SetDefault("highlight.enabled", true)
	v.SetDefault("highlight.style", "monokai")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
}

// Load reads the config file (optional unless named explicitly), applies
// environment overrides and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("overtype")
		v.SetConfigType("yaml")
		dirs := opts.Dirs
		if dirs == nil {
			dirs = []string{"."}
			if dir, err := DefaultDir(); err == nil {
				dirs = append(dirs, dir)
			}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and names that viper cannot.
func (c *Config) Validate() error {
	if c.TabWidth <= 0 {
		return fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalid, c.TabWidth)
	}
	if c.RenumberDelay < 0 {
		return fmt.Errorf("%w: renumber_delay must not be negative, got %s", ErrInvalid, c.RenumberDelay)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}
