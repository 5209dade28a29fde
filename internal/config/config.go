package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultEndpoint serves one random English fact per request.
const DefaultEndpoint = "https://uselessfacts.jsph.pl/api/v2/facts/random?language=en"

// Source kinds understood by the fetcher.
const (
	KindJSON = "json"
	KindFeed = "feed"
	KindHTML = "html"
)

type Config struct {
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Archive ArchiveConfig `yaml:"archive" mapstructure:"archive"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

type FetchConfig struct {
	Kind           string        `yaml:"kind" mapstructure:"kind"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"`
	Field          string        `yaml:"field" mapstructure:"field"`
	Selector       string        `yaml:"selector" mapstructure:"selector"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	ValidateSchema bool          `yaml:"validate_schema" mapstructure:"validate_schema"`
}

type ArchiveConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	CorruptPolicy string `yaml:"corrupt_policy" mapstructure:"corrupt_policy"`
}

type WatchConfig struct {
	Interval      time.Duration `yaml:"interval" mapstructure:"interval"`
	MaxIterations int           `yaml:"max_iterations" mapstructure:"max_iterations"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	File   string `yaml:"file" mapstructure:"file"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FlagBindings maps config keys to the command-line flags that override them.
var FlagBindings = map[string]string{
	"archive.path":         "archive",
	"fetch.endpoint":       "endpoint",
	"fetch.kind":           "kind",
	"fetch.timeout":        "timeout",
	"log.level":            "log-level",
	"log.file":             "log-file",
	"watch.interval":       "interval",
	"watch.max_iterations": "max-iterations",
}

func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			Kind:      KindJSON,
			Endpoint:  DefaultEndpoint,
			Field:     "text",
			Timeout:   10 * time.Second,
			UserAgent: "factcollector/1.0",
		},
		Archive: ArchiveConfig{
			Path:          "facts.json",
			CorruptPolicy: "reset",
		},
		Watch: WatchConfig{
			Interval: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Path returns where `config init` writes the user configuration.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "factcollector", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "factcollector", "config.yaml")
}

// Load builds the configuration from defaults, the config file, FACTCOLLECTOR_*
// environment variables and flags, in increasing order of precedence.
// An empty file searches the working directory and the user config dir.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "factcollector"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "factcollector"))
		}
	}

	v.SetEnvPrefix("FACTCOLLECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("fetch.kind", cfg.Fetch.Kind)
	v.SetDefault("fetch.endpoint", cfg.Fetch.Endpoint)
	v.SetDefault("fetch.field", cfg.Fetch.Field)
	v.SetDefault("fetch.selector", cfg.Fetch.Selector)
	v.SetDefault("fetch.timeout", cfg.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", cfg.Fetch.UserAgent)
	v.SetDefault("fetch.validate_schema", cfg.Fetch.ValidateSchema)
	v.SetDefault("archive.path", cfg.Archive.Path)
	v.SetDefault("archive.corrupt_policy", cfg.Archive.CorruptPolicy)
	v.SetDefault("watch.interval", cfg.Watch.Interval)
	v.SetDefault("watch.max_iterations", cfg.Watch.MaxIterations)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Fetch.Kind {
	case KindJSON, KindFeed, KindHTML:
	default:
		return fmt.Errorf("config: fetch.kind %q is invalid (must be json, feed, or html)", c.Fetch.Kind)
	}
	if c.Fetch.Endpoint == "" {
		return fmt.Errorf("config: fetch.endpoint is required")
	}
	u, err := url.Parse(c.Fetch.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: fetch.endpoint %q must be an absolute http(s) URL", c.Fetch.Endpoint)
	}
	if c.Fetch.Kind == KindHTML && c.Fetch.Selector == "" {
		return fmt.Errorf("config: fetch.selector is required for kind html")
	}
	if c.Fetch.Field == "" {
		c.Fetch.Field = "text"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 10 * time.Second
	}

	if c.Archive.Path == "" {
		return fmt.Errorf("config: archive.path is required")
	}
	switch c.Archive.CorruptPolicy {
	case "":
		c.Archive.CorruptPolicy = "reset"
	case "reset", "fail":
	default:
		return fmt.Errorf("config: archive.corrupt_policy %q is invalid (must be reset or fail)", c.Archive.CorruptPolicy)
	}

	if c.Watch.Interval <= 0 {
		c.Watch.Interval = 30 * time.Second
	}
	if c.Watch.MaxIterations < 0 {
		return fmt.Errorf("config: watch.max_iterations must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "":
		c.Log.Level = "warn"
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn, or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be console or json)", c.Log.Format)
	}
	return nil
}
