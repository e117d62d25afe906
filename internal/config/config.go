// Package config loads the ambient (outer) configuration: server, logging,
// tracing, and archive settings that wrap the engine's own domain.Config.
// Defaults come first, a YAML file overrides them, then environment
// variables (optionally sourced from a .env file) override both — the
// same layering osprey's and alancoin's config packages use, just combined
// into one loader instead of two separate schemes.
package config

import "github.com/fraudgraph/engine/internal/domain"

// AppConfig is the full process configuration.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Archive ArchiveConfig `yaml:"archive"`
	Engine  EngineConfig  `yaml:"engine"`
}

// ServerConfig holds the status API's HTTP settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds log/slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"serviceName"`
	Endpoint    string `yaml:"endpoint"`
}

// ArchiveConfig holds report-archive storage settings.
type ArchiveConfig struct {
	Driver     string `yaml:"driver"` // "sqlite" or "postgres"
	SQLitePath string `yaml:"sqlitePath"`
	PostgresDSN string `yaml:"postgresDsn"`
}

// EngineConfig is the YAML/env-facing mirror of domain.Config — the engine
// itself never imports this package, so EngineConfig.ToDomain converts at
// the boundary.
type EngineConfig struct {
	MaxCycles               int  `yaml:"maxCycles"`
	CentralitySampleSize    int  `yaml:"centralitySampleSize"`
	EnableDeepChainAnalysis bool `yaml:"enableDeepChainAnalysis"`
}

// ToDomain converts the loaded engine section into domain.Config,
// preserving any OverlayRules/ProgressCallback the caller sets afterward
// (this package never populates those — they're supplied by code, not
// config files).
func (e EngineConfig) ToDomain() domain.Config {
	cfg := domain.DefaultConfig()
	if e.MaxCycles > 0 {
		cfg.MaxCycles = e.MaxCycles
	}
	if e.CentralitySampleSize > 0 {
		cfg.CentralitySampleSize = e.CentralitySampleSize
	}
	cfg.EnableDeepChainAnalysis = e.EnableDeepChainAnalysis
	return cfg
}

// Default returns the configuration used when no file or environment
// variable overrides anything.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "fraudgraph",
		},
		Archive: ArchiveConfig{
			Driver:     "sqlite",
			SQLitePath: "./fraudgraph.db",
		},
		Engine: EngineConfig{
			MaxCycles:            1000,
			CentralitySampleSize: 500,
		},
	}
}
