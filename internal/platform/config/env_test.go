package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port     int           `env:"PORTFOLIO_TEST_PORT" envDefault:"123"`
	Interval time.Duration `env:"PORTFOLIO_TEST_INTERVAL" envDefault:"30s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PORTFOLIO_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesProvidedEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_PORT", "999")

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, map[string]string{"PORTFOLIO_TEST_INTERVAL": "5s"}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("Port = %d, want default 123 (process env must be ignored)", cfg.Port)
	}
	if cfg.Interval != 5*time.Second {
		t.Fatalf("Interval = %v, want 5s", cfg.Interval)
	}
}
