package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(error)         {}
func (nopLogger) SetOutput(io.Writer) {}
func (nopLogger) SetJSON(bool)        {}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lorabridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := NewLoader(nopLogger{}).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceWindow())
	assert.False(t, cfg.AllowStale)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
remote_url: http://lm.local:8188/
timeout: 5
cache_ttl: 10
allow_stale: true
path_mappings:
  /remote/loras: /mnt/loras
`)

	cfg, err := NewLoader(nopLogger{}).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://lm.local:8188", cfg.RemoteURL)
	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 10*time.Second, cfg.CacheTTL())
	assert.True(t, cfg.AllowStale)
	assert.Equal(t, "/mnt/loras/a.safetensors", cfg.MapPath("/remote/loras/a.safetensors"))
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "remote_url: [unclosed")

	_, err := NewLoader(nopLogger{}).Load(path)
	require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "remote_url: http://file.local\ntimeout: 5\n")
	t.Setenv(EnvRemoteURL, "http://env.local/")
	t.Setenv(EnvTimeout, "12")

	cfg, err := NewLoader(nopLogger{}).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.local", cfg.RemoteURL)
	assert.Equal(t, 12*time.Second, cfg.Timeout())
}

func TestEnvTimeoutIgnoredWhenInvalid(t *testing.T) {
	path := writeConfig(t, "timeout: 5\n")
	t.Setenv(EnvTimeout, "soon")

	cfg, err := NewLoader(nopLogger{}).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestMapPathLongestPrefixWins(t *testing.T) {
	cfg := Config{PathMappings: map[string]string{
		"/remote":             "/mnt",
		"/remote/loras/anime": "/mnt/styles",
	}}

	assert.Equal(t, "/mnt/styles/a.st", cfg.MapPath("/remote/loras/anime/a.st"))
	assert.Equal(t, "/mnt/loras/b.st", cfg.MapPath("/remote/loras/b.st"))
	assert.Equal(t, "/elsewhere/c.st", cfg.MapPath("/elsewhere/c.st"))
}

func TestMappingPrefixesOrder(t *testing.T) {
	cfg := Config{PathMappings: map[string]string{
		"/a":    "/x",
		"/a/bb": "/y",
		"/a/cc": "/z",
	}}
	assert.Equal(t, []string{"/a/bb", "/a/cc", "/a"}, cfg.MappingPrefixes())
}

func TestStoreWatchReloads(t *testing.T) {
	path := writeConfig(t, "remote_url: http://one.local\ndebounce_ms: 10\n")
	store := NewStore(NewLoader(nopLogger{}), path, nopLogger{})
	require.Equal(t, "http://one.local", store.RemoteURL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	require.NoError(t, store.Watch(ctx, path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("remote_url: http://two.local\ndebounce_ms: 10\n"), 0o600))

	require.Eventually(t, func() bool {
		return store.RemoteURL() == "http://two.local"
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "http://two.local", cfg.RemoteURL)
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}
}
