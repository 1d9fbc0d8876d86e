package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)
}

const minimalConfig = `
openai:
  chat:
    base_url: https://openrouter.ai/api/v1
    token: test-token
    model: test-model
  admin:
    base_url: https://openrouter.ai/api/v1
    token: test-token
    model: admin-model
`

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, minimalConfig)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.User)
	assert.Equal(t, "localhost:5432", cfg.DB.Host)
	assert.Equal(t, "shopassist", cfg.DB.Database)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, 60, cfg.Session.JanitorIntervalSeconds)
	assert.Equal(t, "admin-model", cfg.OpenAI.Admin.Model)
}

func TestLoad_RejectsIncompleteModelConfig(t *testing.T) {
	writeConfig(t, `
openai:
  chat:
    base_url: https://openrouter.ai/api/v1
    model: test-model
  admin:
    base_url: https://openrouter.ai/api/v1
    token: test-token
    model: admin-model
`)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}

func TestDBURL(t *testing.T) {
	db := DB{User: "shop", Pass: "secret", Host: "db:5432", Database: "catalog"}

	assert.Equal(t, "postgres://shop:secret@db:5432/catalog", db.URL())
}
