package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Env overrides, applied after the file.
const (
	EnvRemoteURL = "LORABRIDGE_REMOTE_URL"
	EnvTimeout   = "LORABRIDGE_TIMEOUT"
)

// Loader reads the YAML configuration file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the config at path and applies env overrides. A missing
// file is not an error: the bridge just stays disabled until a config
// appears, matching how an optional remote should degrade.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI flag
	switch {
	case os.IsNotExist(err):
		l.Logger.Warn("no config file at " + path + ", remote bridge disabled")
	case err != nil:
		return cfg, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	default:
		if parseErr := yaml.Unmarshal(raw, &cfg); parseErr != nil {
			return cfg, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
		}
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	cfg.RemoteURL = strings.TrimRight(cfg.RemoteURL, "/")
	return cfg, nil
}

// applyDefaults restores defaults for fields the file zeroed or omitted.
func applyDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = DefaultTimeout
	}
	if cfg.CacheTTLSec <= 0 {
		cfg.CacheTTLSec = DefaultCacheTTL
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = DefaultDebounceMS
	}
}

func applyEnv(cfg *Config) {
	if url := os.Getenv(EnvRemoteURL); url != "" {
		cfg.RemoteURL = url
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.TimeoutSec = secs
		}
	}
}
