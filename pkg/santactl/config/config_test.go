package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.SMTP.Username = "santa@gmail.com"
	cfg.SMTP.SenderName = "Secret Santa"
	cfg.Settings.BrandingName = "North Pole Logistics"

	require.NoError(t, Save(path, &cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SMTP.Username, loaded.SMTP.Username)
	assert.Equal(t, cfg.SMTP.Host, loaded.SMTP.Host)
	assert.Equal(t, cfg.IMAP.SentMailbox, loaded.IMAP.SentMailbox)
	assert.Equal(t, cfg.Settings.BrandingName, loaded.Settings.BrandingName)
}

func TestLoadFillsVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("smtp:\n  host: smtp.example.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VersionV1, cfg.Version)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSaveCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "config.yaml")

	cfg := DefaultConfig()
	require.NoError(t, Save(path, &cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, VersionV1, cfg.Version)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "[Gmail]/Sent Mail", cfg.IMAP.SentMailbox)
	assert.Equal(t, "Merry Christmas", cfg.Giphy.Tag)
	assert.Equal(t, "PG-13", cfg.Giphy.Rating)
	assert.Equal(t, "table", cfg.Settings.OutputFormat)
}
