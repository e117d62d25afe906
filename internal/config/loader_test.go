package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoaderDefaultsWithNoPath(t *testing.T) {
	l, err := NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	cfg := l.Config()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Archive.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Archive.Driver)
	}
}

func TestNewLoaderReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "server:\n  host: 127.0.0.1\n  port: 9090\nengine:\n  maxCycles: 42\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	cfg := l.Config()
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("expected overridden server config, got %+v", cfg.Server)
	}
	if cfg.Engine.MaxCycles != 42 {
		t.Errorf("expected maxCycles 42, got %d", cfg.Engine.MaxCycles)
	}
}

func TestNewLoaderMissingFileFallsBackToDefaults(t *testing.T) {
	l, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if l.Config().Server.Port != 8080 {
		t.Errorf("expected default port, got %d", l.Config().Server.Port)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("FRAUDGRAPH_PORT", "7777")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	if l.Config().Server.Port != 7777 {
		t.Errorf("expected env override to port 7777, got %d", l.Config().Server.Port)
	}
}

func TestEngineConfigToDomain(t *testing.T) {
	e := EngineConfig{MaxCycles: 50, CentralitySampleSize: 10, EnableDeepChainAnalysis: true}
	d := e.ToDomain()
	if d.MaxCycles != 50 || d.CentralitySampleSize != 10 || !d.EnableDeepChainAnalysis {
		t.Errorf("unexpected domain config: %+v", d)
	}
}
