package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "theprojectseo.db", cfg.DatabasePath)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "https://theprojectseo.com", cfg.SiteBaseURL)
	assert.Equal(t, "TheProjectSEO", cfg.SiteName)
	assert.Equal(t, 5.0, cfg.LeadRatePerMinute)
	assert.Equal(t, 3, cfg.LeadRateBurst)
	assert.Empty(t, cfg.SlackWebhookURL)
	assert.Empty(t, cfg.TrustedProxies, "no proxy is trusted unless configured")
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("SITE_BASE_URL", "https://example.com/")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/x")
	t.Setenv("LEAD_RATE_BURST", "10")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("GIN_MODE", "   ")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "https://example.com", cfg.SiteBaseURL)
	assert.Equal(t, "https://hooks.slack.com/services/x", cfg.SlackWebhookURL)
	assert.Equal(t, 10, cfg.LeadRateBurst)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "release", cfg.GinMode, "blank values fall back to defaults")
}

func TestLoadFileEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site_name: From File\nlisten_addr: 127.0.0.1:7000\nlead_notify_to: team@example.com\n"), 0o600))
	t.Setenv("SITE_NAME", "From Env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.SiteName)
	assert.Equal(t, "127.0.0.1:7000", cfg.ListenAddr)
	assert.Equal(t, "team@example.com", cfg.LeadNotifyTo)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadReadsConfigYAMLInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database_path: data/site.db\n"), 0o600))
	t.Chdir(dir)

	cfg := Load()
	assert.Equal(t, "data/site.db", cfg.DatabasePath)
}

func TestTrustedProxiesFromEnvAndFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12,,")
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, Load().TrustedProxies)

	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trusted_proxies:\n  - 127.0.0.1\n  - 10.0.0.0/8\n"), 0o600))
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
}
