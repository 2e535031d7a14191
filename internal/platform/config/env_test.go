package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Count     int     `env:"TEST_COUNT" envDefault:"3"`
	BaseLevel float64 `env:"TEST_BASE_LEVEL" envDefault:"10"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Count != 3 {
		t.Fatalf("expected default count 3, got %d", cfg.Count)
	}
	if cfg.BaseLevel != 10 {
		t.Fatalf("expected default base level 10, got %v", cfg.BaseLevel)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TEST_COUNT", "99")
	t.Setenv("LOOTFORGE_TEST_COUNT", "7")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Count != 7 {
		t.Fatalf("expected prefixed count 7, got %d", cfg.Count)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("LOOTFORGE_TEST_COUNT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
