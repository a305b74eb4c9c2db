// Package config loads client configuration from a YAML file and keeps a
// client in sync with it.
//
// Example file:
//
//	auth_token: 055da5b3ac7c932573cc1ffbf6a21d9c
//	account_id: 688743ad724a144fc1e051d9
//	workspace_id: 67bed03cc39204069f2f0366
//	base_url: https://api.example.com/apigw/ingest
//	timeout_ms: 30000
//	max_retries: 3
//	retry_delay_ms: 1000
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	datapipeline "github.com/xraph/datapipeline"
)

// File is the on-disk layout. Unset fields take the client defaults.
type File struct {
	AuthToken    string `yaml:"auth_token"`
	AccountID    string `yaml:"account_id"`
	WorkspaceID  string `yaml:"workspace_id"`
	BaseURL      string `yaml:"base_url"`
	TimeoutMs    int    `yaml:"timeout_ms"`
	MaxRetries   *int   `yaml:"max_retries"`
	RetryDelayMs *int   `yaml:"retry_delay_ms"`
	RateLimit    int    `yaml:"rate_limit"`
}

// Config converts f to a client configuration, applying defaults.
func (f File) Config() datapipeline.Config {
	cfg := datapipeline.DefaultConfig()
	cfg.AuthToken = f.AuthToken
	cfg.AccountID = f.AccountID
	cfg.WorkspaceID = f.WorkspaceID
	cfg.BaseURL = f.BaseURL
	cfg.RateLimit = f.RateLimit
	if f.TimeoutMs > 0 {
		cfg.Timeout = time.Duration(f.TimeoutMs) * time.Millisecond
	}
	if f.MaxRetries != nil {
		cfg.MaxRetries = *f.MaxRetries
	}
	if f.RetryDelayMs != nil {
		cfg.RetryBaseDelay = time.Duration(*f.RetryDelayMs) * time.Millisecond
	}
	return cfg
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (datapipeline.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return datapipeline.Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := f.Config()
	if err := cfg.Validate(); err != nil {
		return datapipeline.Config{}, err
	}
	return cfg, nil
}

// Load reads and validates the file at path.
func Load(path string) (datapipeline.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return datapipeline.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return datapipeline.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Updater receives reloaded configurations. *datapipeline.Client
// implements it.
type Updater interface {
	UpdateConfig(datapipeline.Config) error
}

// Loader reads a config file and watches it for changes.
type Loader struct {
	path     string
	logger   *slog.Logger
	mu       sync.RWMutex
	current  datapipeline.Config
	onChange []func(datapipeline.Config)
}

// NewLoader creates a Loader and performs the initial load. A nil logger
// uses slog.Default.
func NewLoader(path string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Loader{path: path, logger: logger, current: cfg}, nil
}

// Config returns the latest valid configuration.
func (l *Loader) Config() datapipeline.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked after every successful reload.
func (l *Loader) OnChange(fn func(datapipeline.Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Bind applies the current configuration to u and every later reload.
func (l *Loader) Bind(u Updater) error {
	if err := u.UpdateConfig(l.Config()); err != nil {
		return err
	}
	l.OnChange(func(cfg datapipeline.Config) {
		if err := u.UpdateConfig(cfg); err != nil {
			l.logger.Warn("config reload rejected by client", "path", l.path, "error", err)
		}
	})
	return nil
}

// Reload re-reads the file. On error the previous configuration stays in
// place and no callback runs.
func (l *Loader) Reload() (datapipeline.Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return datapipeline.Config{}, err
	}
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(datapipeline.Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	l.logger.Info("config reloaded", "path", l.path, "config", cfg)
	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

// Watch starts a background goroutine that reloads the config when the
// file is written, created or replaced. The parent directory is watched so
// that editors saving through a rename are picked up. Call the returned
// stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", dir, err)
	}
	target := filepath.Clean(l.path)

	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if _, err := l.Reload(); err != nil {
					l.logger.Warn("config reload failed, keeping previous", "path", l.path, "error", err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("config watcher error", "path", l.path, "error", err)
			case <-done:
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }, nil
}
