package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

// EnvPrefix prefixes every environment variable, as in CHALK_PORT.
const EnvPrefix = "CHALK"

// Config is read from defaults, then an optional TOML file, then the
// environment; later sources win. Fields carry no envconfig defaults: an
// unset variable keeps the earlier value.
type Config struct {
	Port           int     `envconfig:"PORT" toml:"port"`
	JWTSecret      string  `envconfig:"JWT_SECRET" toml:"jwt_secret"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" toml:"allowed_origins"`
	Height         int     `envconfig:"HEIGHT" toml:"height"`
	Padding        float64 `envconfig:"PADDING" toml:"padding"`
	FontPath       string  `envconfig:"FONT_PATH" toml:"font_path"`
	LogLevel       string  `envconfig:"LOG_LEVEL" toml:"log_level"`
}

func Defaults() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: "http://localhost:5173,http://localhost:3000",
		Height:         render.DefaultHeight,
		Padding:        render.DefaultPadding,
		LogLevel:       "info",
	}
}

// Load builds the configuration. path names a TOML file; when empty the
// CHALK_CONFIG variable is consulted, and no file is read if both are
// empty.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if extra := meta.Undecoded(); len(extra) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, extra[0].String())
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Height <= 0 || c.Height > render.MaxCanvas {
		errs = append(errs, fmt.Errorf("height must be in 1..%d, got %d", render.MaxCanvas, c.Height))
	}
	if c.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding must not be negative, got %g", c.Padding))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// RenderOptions returns the canvas options implied by the configuration.
func (c *Config) RenderOptions() []render.Option {
	return []render.Option{render.WithHeight(c.Height), render.WithPadding(c.Padding)}
}

// Font loads the configured font file, or returns nil when none is set.
func (c *Config) Font() (*shape.Font, error) {
	if c.FontPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := shape.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.FontPath, err)
	}
	return f, nil
}
