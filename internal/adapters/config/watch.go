package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lorabridge/lorabridge/internal/core/ports"
)

// Store holds the live configuration. Readers call Current per use so
// a reload is picked up without plumbing new values around.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	loader *Loader
	logger ports.Logger
}

// NewStore loads path once and returns the store around the result.
// A load failure falls back to defaults but is reported, the server
// should still come up on a broken config file.
func NewStore(loader *Loader, path string, logger ports.Logger) *Store {
	cfg, err := loader.Load(path)
	if err != nil {
		logger.Error(err)
	}
	return &Store{cfg: cfg, loader: loader, logger: logger}
}

// Current returns the live configuration.
func (s *Store) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// RemoteURL returns the live remote base URL, for per-request reads.
func (s *Store) RemoteURL() string {
	return s.Current().RemoteURL
}

// MapPath applies the live prefix mappings.
func (s *Store) MapPath(remote string) string {
	return s.Current().MapPath(remote)
}

func (s *Store) set(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// Watch reloads the store when the file at path changes, debounced so
// editors that write in several steps trigger one reload. onChange
// runs after each successful reload; nil is allowed. Watch returns
// once the watcher is installed and stops when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, path string, onChange func(Config)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors and config writers
	// replace the file, which drops a direct watch.
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return err
	}

	base := filepath.Base(path)
	window := s.Current().DebounceWindow()

	go func() {
		defer func() { _ = fsWatcher.Close() }()

		var mu sync.Mutex
		var timer *time.Timer
		reload := func() {
			cfg, err := s.loader.Load(path)
			if err != nil {
				s.logger.Error(err)
				return
			}
			s.set(cfg)
			s.logger.Info("configuration reloaded from " + path)
			if onChange != nil {
				onChange(cfg)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(window, reload)
				mu.Unlock()
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				s.logger.Error(err)
			}
		}
	}()

	return nil
}
