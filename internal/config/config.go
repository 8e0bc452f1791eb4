// Package config provides configuration management for the dialcodes toolkit.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mattsblocklist/dialcodes/internal/catalog"
	"github.com/mattsblocklist/dialcodes/internal/countries"
	"github.com/mattsblocklist/dialcodes/internal/sources"
)

// Reference modes.
const (
	ReferenceNone    = "none"
	ReferenceBuiltin = "builtin"
)

// Config represents the application configuration.
type Config struct {
	Locale      string          `yaml:"locale"`
	Placeholder string          `yaml:"placeholder"`
	Default     catalog.Default `yaml:"default"`
	Reference   string          `yaml:"reference"`
	Sources     SourcesConfig   `yaml:"sources"`
	Log         LogConfig       `yaml:"log"`
}

// SourcesConfig lists where raw entries are loaded from.
type SourcesConfig struct {
	Primary   sources.Spec   `yaml:"primary"`
	Fallbacks []sources.Spec `yaml:"fallbacks"`
	Timeout   time.Duration  `yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string         `yaml:"level"`
	File     string         `yaml:"file"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig holds log file rotation settings.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// Default returns the configuration used when no file is given: builtin
// catalogue as the only source, Togo as the default country.
func Default() *Config {
	return &Config{
		Locale:      "fr",
		Placeholder: catalog.DefaultPlaceholder,
		Default:     catalog.Togo,
		Reference:   ReferenceNone,
		Sources: SourcesConfig{
			Primary: sources.Spec{Type: "builtin"},
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "INFO",
			Rotation: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// Load reads configuration from a YAML file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	cfg.Default = catalog.Default{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolveDefault()
	return cfg, nil
}

// LoadFromEnv creates a configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	def := Default()
	cfg := &Config{
		Locale:      getEnv("DIALCODES_LOCALE", def.Locale),
		Placeholder: getEnv("DIALCODES_PLACEHOLDER", def.Placeholder),
		Default: catalog.Default{
			ISO:         getEnv("DIALCODES_DEFAULT_ISO", ""),
			Name:        getEnv("DIALCODES_DEFAULT_NAME", ""),
			FallbackISO: getEnv("DIALCODES_FALLBACK_ISO", ""),
		},
		Reference: getEnv("DIALCODES_REFERENCE", def.Reference),
		Sources: SourcesConfig{
			Primary: sources.Spec{
				Type:     getEnv("DIALCODES_SOURCE_TYPE", def.Sources.Primary.Type),
				Location: getEnv("DIALCODES_SOURCE", ""),
			},
			Timeout: getEnvDuration("DIALCODES_TIMEOUT", def.Sources.Timeout),
		},
		Log: LogConfig{
			Level: getEnv("DIALCODES_LOG_LEVEL", def.Log.Level),
			File:  getEnv("DIALCODES_LOG_FILE", ""),
			Rotation: RotationConfig{
				MaxSizeMB:  getEnvInt("DIALCODES_LOG_MAX_SIZE_MB", def.Log.Rotation.MaxSizeMB),
				MaxBackups: getEnvInt("DIALCODES_LOG_MAX_BACKUPS", def.Log.Rotation.MaxBackups),
				MaxAgeDays: getEnvInt("DIALCODES_LOG_MAX_AGE_DAYS", def.Log.Rotation.MaxAgeDays),
				Compress:   getEnvBool("DIALCODES_LOG_COMPRESS", false),
			},
		},
	}

	// A remote primary keeps the builtin catalogue as its fallback.
	if fallback := getEnv("DIALCODES_FALLBACK_FILE", ""); fallback != "" {
		cfg.Sources.Fallbacks = append(cfg.Sources.Fallbacks, sources.Spec{Type: "file", Location: fallback})
	}
	if cfg.Sources.Primary.Type != "builtin" {
		cfg.Sources.Fallbacks = append(cfg.Sources.Fallbacks, sources.Spec{Type: "builtin"})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolveDefault()
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.Sources.Primary.Type == "" {
		return fmt.Errorf("sources.primary.type is required")
	}
	switch c.Reference {
	case ReferenceNone, ReferenceBuiltin:
	default:
		return fmt.Errorf("invalid reference %q: want %q or %q", c.Reference, ReferenceNone, ReferenceBuiltin)
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("sources.timeout must be positive")
	}
	return nil
}

// resolveDefault fills the default country. With neither ISO nor name set
// it is Togo; an ISO without a name takes its name from the builtin
// catalogue in the configured locale, so both selection lists agree.
func (c *Config) resolveDefault() {
	if c.Default.ISO == "" && c.Default.Name == "" {
		c.Default.ISO = catalog.Togo.ISO
		c.Default.Name = catalog.Togo.Name
		return
	}
	if c.Default.ISO != "" && c.Default.Name == "" {
		ref := countries.NewReference(countries.BuiltinReference(c.Tag()))
		if name, ok := ref.Label(strings.ToUpper(c.Default.ISO)); ok {
			c.Default.Name = name
		}
	}
}

// Tag returns the parsed locale. Validate guarantees it parses.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.French
	}
	return tag
}

// SourceSpecs returns the primary followed by the fallbacks.
func (c *Config) SourceSpecs() []sources.Spec {
	return append([]sources.Spec{c.Sources.Primary}, c.Sources.Fallbacks...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1" || val == "yes"
}

func getEnvInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultVal
}
