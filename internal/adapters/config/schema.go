// Package config provides the configuration loader for lorabridge.
package config

import (
	"sort"
	"strings"
	"time"
)

// Defaults applied when the file omits a field.
const (
	DefaultListen     = ":8188"
	DefaultTimeout    = 30
	DefaultCacheTTL   = 60
	DefaultDebounceMS = 500
)

// Config is the YAML file shape. Durations are plain seconds (or
// milliseconds where named so) to keep the file format friendly.
type Config struct {
	RemoteURL    string            `yaml:"remote_url"`
	Listen       string            `yaml:"listen"`
	TimeoutSec   int               `yaml:"timeout"`
	CacheTTLSec  int               `yaml:"cache_ttl"`
	AllowStale   bool              `yaml:"allow_stale"`
	DebounceMS   int               `yaml:"debounce_ms"`
	PathMappings map[string]string `yaml:"path_mappings"`
}

// Default returns a config with every field at its default. The zero
// remote URL keeps the bridge disabled until one is configured.
func Default() Config {
	return Config{
		Listen:      DefaultListen,
		TimeoutSec:  DefaultTimeout,
		CacheTTLSec: DefaultCacheTTL,
		DebounceMS:  DefaultDebounceMS,
	}
}

// IsConfigured reports whether a remote instance is set.
func (c Config) IsConfigured() bool {
	return c.RemoteURL != ""
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// MapPath rewrites a remote absolute path onto the local mount. The
// longest matching prefix wins so nested mappings shadow their parent.
// Paths without a matching prefix pass through unchanged.
func (c Config) MapPath(remote string) string {
	best := ""
	for prefix := range c.PathMappings {
		if strings.HasPrefix(remote, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return remote
	}
	return c.PathMappings[best] + remote[len(best):]
}

// MappingPrefixes returns the configured remote prefixes, longest
// first, for diagnostics.
func (c Config) MappingPrefixes() []string {
	out := make([]string, 0, len(c.PathMappings))
	for prefix := range c.PathMappings {
		out = append(out, prefix)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
