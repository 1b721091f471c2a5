package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithRequiredKeys(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_KEY", "access-secret")
	t.Setenv("REFRESH_TOKEN_KEY", "refresh-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenAge)
	assert.Equal(t, 30*time.Minute, cfg.LikesCacheTTL)
	assert.Equal(t, "localhost:5000", cfg.Addr())
	assert.Equal(t, "http://localhost:5000", cfg.PublicBaseURL())
	assert.Equal(t, []byte("access-secret"), cfg.AccessTokenKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_KEY", "a")
	t.Setenv("REFRESH_TOKEN_KEY", "r")
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("ACCESS_TOKEN_AGE", "1h")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, time.Hour, cfg.AccessTokenAge)
	assert.Equal(t, 5, cfg.RateLimitRPS)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := []byte("port: 9000\naccess_token_key: file-access\nrefresh_token_key: file-refresh\nuploads_dir: /srv/covers\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/srv/covers", cfg.UploadsDir)
	assert.Equal(t, []byte("file-refresh"), cfg.RefreshTokenKey)
}

func TestLoad_MissingKeys(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_KEY", "")
	t.Setenv("REFRESH_TOKEN_KEY", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "ACCESS_TOKEN_KEY")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
