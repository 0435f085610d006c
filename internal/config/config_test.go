package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MinSimilarityAboveOne(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Engine: EngineConfig{MinSimilarity: 1.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for min_similarity > 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Engine.MaxResults != 100 {
		t.Errorf("expected MaxResults=100, got %d", cfg.Engine.MaxResults)
	}
	if cfg.Engine.MinSimilarity != 0.7 {
		t.Errorf("expected MinSimilarity=0.7, got %g", cfg.Engine.MinSimilarity)
	}
	if cfg.Engine.TextWeight != 1.0 {
		t.Errorf("expected TextWeight=1.0, got %g", cfg.Engine.TextWeight)
	}
	if cfg.Engine.VectorWeight != 0.8 {
		t.Errorf("expected VectorWeight=0.8, got %g", cfg.Engine.VectorWeight)
	}
	if cfg.Engine.MinQueryLength != 2 {
		t.Errorf("expected MinQueryLength=2, got %d", cfg.Engine.MinQueryLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Engine: EngineConfig{
			MaxResults:     50,
			MinSimilarity:  0.5,
			TextWeight:     2.0,
			VectorWeight:   0.5,
			MinQueryLength: 3,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Engine.MaxResults != 50 {
		t.Errorf("expected MaxResults=50, got %d", cfg.Engine.MaxResults)
	}
	if cfg.Engine.MinQueryLength != 3 {
		t.Errorf("expected MinQueryLength=3, got %d", cfg.Engine.MinQueryLength)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	raw := `
http:
  port: ${TEST_ASSETDEX_PORT:-9090}
database:
  addrs:
    - ${TEST_ASSETDEX_ADDR:-localhost:6379}
engine:
  text_weight: 1.5
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	t.Setenv("TEST_ASSETDEX_PORT", "7070")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != 7070 {
		t.Errorf("expected port 7070 from env, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("expected default addr, got %v", cfg.Database.Addrs)
	}
	if cfg.Engine.TextWeight != 1.5 {
		t.Errorf("expected TextWeight=1.5, got %g", cfg.Engine.TextWeight)
	}
	if cfg.Engine.MaxResults != 100 {
		t.Errorf("expected defaulted MaxResults=100, got %d", cfg.Engine.MaxResults)
	}
}
