package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Dir != "html_cache" {
		t.Fatalf("expected default cache dir, got %q", cfg.Cache.Dir)
	}
	if cfg.Records.Dir != "coding_records" {
		t.Fatalf("expected default records dir, got %q", cfg.Records.Dir)
	}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", got)
	}
	if cfg.HTTP.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.HTTP.MaxAttempts)
	}
	if cfg.Coding.TagSet != "top20" {
		t.Fatalf("expected top20 tag set, got %q", cfg.Coding.TagSet)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
cache:
  dir: /tmp/pages
records:
  dir: /tmp/records
http:
  timeout_seconds: 10
  max_attempts: 5
  user_agent: test-agent
coding:
  tag_set: top50
  csv: poems.csv
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Cache.Dir != "/tmp/pages" || cfg.Records.Dir != "/tmp/records" {
		t.Fatalf("expected directory overrides to apply: %+v", cfg)
	}
	if cfg.HTTP.MaxAttempts != 5 || cfg.HTTP.UserAgent != "test-agent" {
		t.Fatalf("expected http overrides to apply: %+v", cfg.HTTP)
	}
	if got := cfg.Timeout(); got != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", got)
	}
	if cfg.Coding.TagSet != "top50" || cfg.Coding.CSV != "poems.csv" {
		t.Fatalf("expected coding overrides to apply: %+v", cfg.Coding)
	}
	if cfg.Logging.Development {
		t.Fatal("expected development logging to be disabled")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty cache dir", func(c *Config) { c.Cache.Dir = " " }},
		{"empty records dir", func(c *Config) { c.Records.Dir = "" }},
		{"zero timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }},
		{"zero attempts", func(c *Config) { c.HTTP.MaxAttempts = 0 }},
		{"empty user agent", func(c *Config) { c.HTTP.UserAgent = "" }},
		{"unknown tag set", func(c *Config) { c.Coding.TagSet = "top100" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
