package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DeploymentEnv != EnvLocal {
		t.Errorf("DeploymentEnv = %q, want %q", cfg.DeploymentEnv, EnvLocal)
	}
	if cfg.Collection != "clinical_trials" {
		t.Errorf("Collection = %q, want clinical_trials", cfg.Collection)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.GenerationTimeout != 10*time.Second {
		t.Errorf("GenerationTimeout = %v, want 10s", cfg.GenerationTimeout)
	}
	if cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", cfg.BatchSize)
	}
	if cfg.SampleSeed != 42 {
		t.Errorf("SampleSeed = %d, want 42", cfg.SampleSeed)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "deployment_env: cloud\ntop_k: 7\ncollection: demo_trials\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DeploymentEnv != EnvCloud {
		t.Errorf("DeploymentEnv = %q, want cloud", cfg.DeploymentEnv)
	}
	if cfg.TopK != 7 {
		t.Errorf("TopK = %d, want 7", cfg.TopK)
	}
	if cfg.Collection != "demo_trials" {
		t.Errorf("Collection = %q, want demo_trials", cfg.Collection)
	}
	// Unset fields keep their defaults.
	if cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want default 500", cfg.BatchSize)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("top_k: 7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	t.Setenv("TOP_K", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TopK != 9 {
		t.Errorf("TopK = %d, want env override 9", cfg.TopK)
	}
}

func TestLoadInvalidDeploymentEnv(t *testing.T) {
	t.Setenv("DEPLOYMENT_ENV", "staging")

	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid deployment env")
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
