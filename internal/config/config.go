// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Records RecordsConfig `mapstructure:"records"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Coding  CodingConfig  `mapstructure:"coding"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig sets the on-disk page cache location.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// RecordsConfig sets the directory holding the coding log and snapshot.
type RecordsConfig struct {
	Dir string `mapstructure:"dir"`
}

// HTTPConfig configures fetch timeout and retry behavior.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
	UserAgent      string `mapstructure:"user_agent"`
}

// CodingConfig governs the coding vocabulary offered to the session.
type CodingConfig struct {
	TagSet string `mapstructure:"tag_set"`
	CSV    string `mapstructure:"csv"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POEMCODER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.dir", "html_cache")
	v.SetDefault("records.dir", "coding_records")
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_attempts", 3)
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("coding.tag_set", "top20")
	v.SetDefault("coding.csv", "poets.csv")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Cache.Dir) == "" {
		return fmt.Errorf("cache.dir must be set")
	}
	if strings.TrimSpace(c.Records.Dir) == "" {
		return fmt.Errorf("records.dir must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxAttempts <= 0 {
		return fmt.Errorf("http.max_attempts must be > 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.Coding.TagSet != "top20" && c.Coding.TagSet != "top50" {
		return fmt.Errorf("coding.tag_set must be top20 or top50")
	}
	return nil
}

// Timeout converts the HTTP timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
