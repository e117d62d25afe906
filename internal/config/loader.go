package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads an AppConfig from defaults, an optional YAML file, and
// environment variables (in that overriding order), and can watch the
// YAML file for hot-reload the way fluxflow's config loader does.
type Loader struct {
	path string

	mu       sync.RWMutex
	current  AppConfig
	onChange []func(AppConfig)
}

// NewLoader loads once from path (if non-empty) plus the environment and
// returns a Loader positioned at that configuration. A missing path is
// not an error — the loader falls back to defaults plus environment
// overrides only.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current configuration.
func (l *Loader) Config() AppConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever Watch picks up a file
// change or Reload is called explicitly.
func (l *Loader) OnChange(fn func(AppConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Reload forces an immediate re-read of the file and environment.
func (l *Loader) Reload() (AppConfig, error) {
	cfg, err := l.load()
	if err != nil {
		return AppConfig{}, err
	}
	l.apply(cfg)
	return cfg, nil
}

// Watch starts a background goroutine that reloads whenever the config
// file changes on disk. Call the returned stop function to clean up. A
// no-op (with a nil error) if the loader has no path to watch.
func (l *Loader) Watch() (stop func(), err error) {
	if l.path == "" {
		return func() {}, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if cfg, err := l.load(); err == nil {
						l.apply(cfg)
					}
				}
			case <-w.Errors:
				// Ignore watcher errors; keep serving the last good config.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

func (l *Loader) apply(cfg AppConfig) {
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(AppConfig), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

func (l *Loader) load() (AppConfig, error) {
	cfg := Default()

	_ = godotenv.Load()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			if !os.IsNotExist(err) {
				return AppConfig{}, fmt.Errorf("read config %s: %w", l.path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config %s: %w", l.path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("FRAUDGRAPH_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := getEnvInt("FRAUDGRAPH_PORT"); v != 0 {
		cfg.Server.Port = v
	}
	if v := os.Getenv("FRAUDGRAPH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FRAUDGRAPH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("FRAUDGRAPH_TRACING_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
		cfg.Tracing.Enabled = true
	}
	if v := os.Getenv("FRAUDGRAPH_ARCHIVE_DRIVER"); v != "" {
		cfg.Archive.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Archive.PostgresDSN = v
	}
	if v := getEnvInt("FRAUDGRAPH_MAX_CYCLES"); v != 0 {
		cfg.Engine.MaxCycles = v
	}
}

func getEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
