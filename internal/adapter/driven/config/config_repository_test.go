package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
client_id: 11111111-1111-1111-1111-111111111111
tenant_id: 22222222-2222-2222-2222-222222222222
transcripts_only: true
report_type:
  - json
  - csv
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", cfg.ClientID)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", cfg.TenantID)
	assert.True(t, cfg.TranscriptsOnly)
	assert.Equal(t, []string{"json", "csv"}, cfg.ReportType)
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
client_id = "client"
tenant_id = "tenant"
report_name = "weekly_webhooks"
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "tenant", cfg.TenantID)
	assert.Equal(t, "weekly_webhooks", cfg.ReportName)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"client_id": "client", "dir": "/tmp/reports"}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadConfigFileUnsupportedFormat(t *testing.T) {
	path := writeTempConfig(t, "config.ini", "client_id=client")

	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}
