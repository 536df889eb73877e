package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "memory", cfg.PubSubType)
	assert.Equal(t, cfg.AppBaseURL, cfg.AllowedOrigin)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("UPLOAD_DIR", "/var/lib/parley/uploads")
	t.Setenv("UPLOADS_PER_MINUTE", "5")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "/var/lib/parley/uploads", cfg.UploadDir)
	assert.Equal(t, 5, cfg.UploadsPerMin)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
}

func TestLoad_RedisPubSubRequiresURL(t *testing.T) {
	t.Setenv("PUBSUB_TYPE", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_UnknownPubSubType(t *testing.T) {
	t.Setenv("PUBSUB_TYPE", "nats")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_R2StorageRequiresCredentials(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "r2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R2_BUCKET")
}

func TestLoad_R2StorageWithCredentials(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "r2")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET", "parley-uploads")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com", cfg.R2Endpoint)
}
