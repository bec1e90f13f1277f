package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager owns the persisted config file. It keeps an in-memory copy,
// persists validated updates atomically, and can watch the file so edits
// made while an interactive session is open take effect on the next run.
type Manager struct {
	path     string
	debounce time.Duration
	seed     *Config

	mu      sync.RWMutex
	current Config
	notify  func(Config)
	watcher *fsnotify.Watcher

	selfWrite atomic.Bool
}

type ManagerOption func(*Manager)

// WithConfigPath overrides the config file location.
func WithConfigPath(path string) ManagerOption {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithConfigDir places config.json inside dir.
func WithConfigDir(dir string) ManagerOption {
	return func(m *Manager) {
		if dir != "" {
			m.path = filepath.Join(dir, "config.json")
		}
	}
}

// WithDebounce overrides the file watch debounce window.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithInitialConfig seeds the file when it does not exist yet. An existing
// file always wins over the seed.
func WithInitialConfig(cfg *Config) ManagerOption {
	return func(m *Manager) {
		m.seed = cfg
	}
}

// NewManager loads the config file, creating it from the seed (or defaults)
// when absent. An unreadable or invalid existing file is an error rather
// than being silently replaced.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{debounce: 300 * time.Millisecond}
	for _, opt := range opts {
		opt(m)
	}

	if m.path == "" {
		path, err := defaultConfigPath()
		if err != nil {
			return nil, err
		}
		m.path = path
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	cfg, err := m.loadOrSeed()
	if err != nil {
		return nil, err
	}
	m.current = cfg
	return m, nil
}

func (m *Manager) loadOrSeed() (Config, error) {
	var cfg Config
	err := readConfig(m.path, &cfg)
	switch {
	case err == nil:
		if verr := cfg.Validate(); verr != nil {
			return Config{}, fmt.Errorf("config file %s: %w", m.path, verr)
		}
		return cfg, nil
	case errors.Is(err, os.ErrNotExist):
		if m.seed != nil {
			cfg = *m.seed
		} else {
			cfg = *DefaultConfigWithRoot(filepath.Dir(m.path))
		}
		if verr := cfg.Validate(); verr != nil {
			return Config{}, verr
		}
		if werr := writeConfig(m.path, cfg); werr != nil {
			return Config{}, fmt.Errorf("write initial config: %w", werr)
		}
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("load config: %w", err)
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// Update validates, persists and applies a new configuration. Saving an
// unchanged config is a no-op, so prompt answers can be re-saved freely.
func (m *Manager) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.RLock()
	unchanged := cfg == m.current
	m.mu.RUnlock()
	if unchanged {
		return nil
	}

	m.selfWrite.Store(true)
	if err := writeConfig(m.path, cfg); err != nil {
		m.selfWrite.Store(false)
		return err
	}
	time.AfterFunc(m.debounce, func() { m.selfWrite.Store(false) })

	m.apply(cfg)
	return nil
}

// Watch reloads the config whenever the file changes on disk, calling
// notify with each applied config. The watch stops when ctx is canceled.
// Calling Watch again only replaces the notify callback.
func (m *Manager) Watch(ctx context.Context, notify func(Config)) error {
	m.mu.Lock()
	m.notify = notify
	if m.watcher != nil {
		m.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.watcher = watcher
	m.mu.Unlock()

	// Watch the directory, not the file: editors replace the file by
	// rename, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	go m.run(ctx, watcher)
	return nil
}

func (m *Manager) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var pending *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != filepath.Clean(m.path) {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if m.selfWrite.Load() {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(m.debounce, m.reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watch: %v", err)
		}
	}
}

// reload re-reads the file after an external edit. Unreadable or invalid
// content keeps the last good config; a deleted file is restored from it.
func (m *Manager) reload() {
	var cfg Config
	if err := readConfig(m.path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := writeConfig(m.path, m.Get()); werr != nil {
				log.Printf("config restore: %v", werr)
			}
			return
		}
		log.Printf("config reload: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("config reload: keeping previous config: %v", err)
		return
	}

	m.mu.RLock()
	changed := cfg != m.current
	m.mu.RUnlock()
	if changed {
		m.apply(cfg)
	}
}

func (m *Manager) apply(cfg Config) {
	m.mu.Lock()
	m.current = cfg
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify(cfg)
	}
}

// defaultConfigPath resolves the config file location: the CATSTONKS_CONFIG
// environment variable when set, else config.json under the user config dir.
func defaultConfigPath() (string, error) {
	if path := os.Getenv("CATSTONKS_CONFIG"); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "catstonks", "config.json"), nil
}

func readConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// writeConfig replaces the file atomically so a watcher never observes a
// half-written config.
func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(&cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.json")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
