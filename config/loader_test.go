package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	datapipeline "github.com/xraph/datapipeline"
	"github.com/xraph/datapipeline/config"
)

const validYAML = `
auth_token: token-aaaaaaaaaaaa
account_id: acc-1
workspace_id: ws-1
base_url: https://api.example.com/ingest
timeout_ms: 5000
max_retries: 0
retry_delay_ms: 250
`

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "token-aaaaaaaaaaaa", cfg.AuthToken)
	assert.Equal(t, "acc-1", cfg.AccountID)
	assert.Equal(t, "ws-1", cfg.WorkspaceID)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries, "explicit zero retries is kept")
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("auth_token: t\naccount_id: a\nworkspace_id: w\nbase_url: http://localhost:8080\n"))
	require.NoError(t, err)

	def := datapipeline.DefaultConfig()
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, def.MaxRetries, cfg.MaxRetries)
	assert.Equal(t, def.RetryBaseDelay, cfg.RetryBaseDelay)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := config.Parse([]byte("account_id: a\nworkspace_id: w\nbase_url: http://x\n"))
	assert.ErrorIs(t, err, datapipeline.ErrConfiguration)

	_, err = config.Parse([]byte("auth_token: [unterminated"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type fakeUpdater struct {
	mu   sync.Mutex
	seen []datapipeline.Config
}

func (f *fakeUpdater) UpdateConfig(cfg datapipeline.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, cfg)
	return nil
}

func (f *fakeUpdater) last() datapipeline.Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[len(f.seen)-1]
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeFile(t, path, validYAML)

	l, err := config.NewLoader(path, quiet)
	require.NoError(t, err)

	var calls int
	l.OnChange(func(datapipeline.Config) { calls++ })

	writeFile(t, path, "auth_token: \"\"\n")
	_, err = l.Reload()
	assert.Error(t, err)
	assert.Equal(t, "acc-1", l.Config().AccountID)
	assert.Zero(t, calls)
}

func TestBindAppliesCurrentAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeFile(t, path, validYAML)

	l, err := config.NewLoader(path, quiet)
	require.NoError(t, err)

	u := &fakeUpdater{}
	require.NoError(t, l.Bind(u))
	assert.Equal(t, "acc-1", u.last().AccountID)

	writeFile(t, path, validYAML+"rate_limit: 5\n")
	_, err = l.Reload()
	require.NoError(t, err)
	assert.Equal(t, 5, u.last().RateLimit)
}

func TestBindRealClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeFile(t, path, validYAML)

	l, err := config.NewLoader(path, quiet)
	require.NoError(t, err)

	c, err := datapipeline.New(datapipeline.WithConfig(l.Config()), datapipeline.WithLogger(quiet))
	require.NoError(t, err)
	require.NoError(t, l.Bind(c))

	writeFile(t, path, `
auth_token: token-bbbbbbbbbbbb
account_id: acc-2
workspace_id: ws-2
base_url: https://api.example.com/ingest
`)
	_, err = l.Reload()
	require.NoError(t, err)
	assert.Equal(t, "acc-2", c.Config().AccountID)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	writeFile(t, path, validYAML)

	l, err := config.NewLoader(path, quiet)
	require.NoError(t, err)

	changed := make(chan datapipeline.Config, 8)
	l.OnChange(func(cfg datapipeline.Config) { changed <- cfg })

	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	writeFile(t, path, `
auth_token: token-cccccccccccc
account_id: acc-3
workspace_id: ws-3
base_url: https://api.example.com/ingest
`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.AccountID == "acc-3" {
				assert.Equal(t, "acc-3", l.Config().AccountID)
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}
