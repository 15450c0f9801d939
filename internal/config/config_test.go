package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("VISTA_JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.False(t, cfg.Server.AsyncCleanup)
		assert.Equal(t, "root:@tcp(127.0.0.1:3306)/vista_video?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN())
		assert.Equal(t, 14*24*time.Hour, cfg.Redis.SessionTTL)
		assert.Equal(t, "https://upload.imagekit.io/api/v1/files/upload", cfg.CDN.UploadURL)
		assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
		assert.Equal(t, int64(500<<20), cfg.Upload.MaxBytes)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("VISTA_JWT_SECRET", "secret")
		t.Setenv("VISTA_SERVER_PORT", "9090")
		t.Setenv("VISTA_SERVER_ASYNCCLEANUP", "true")
		t.Setenv("VISTA_DATABASE_HOST", "db")
		t.Setenv("VISTA_CDN_PRIVATEKEY", "private_xxx")
		t.Setenv("VISTA_REDIS_SESSIONTTL", "1h")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.True(t, cfg.Server.AsyncCleanup)
		assert.Equal(t, "db", cfg.Database.Host)
		assert.Equal(t, "private_xxx", cfg.CDN.PrivateKey)
		assert.Equal(t, time.Hour, cfg.Redis.SessionTTL)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("VISTA_JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestRead_SkipsServerValidation(t *testing.T) {
	t.Setenv("VISTA_JWT_SECRET", "")
	t.Setenv("VISTA_DATABASE_NAME", "seed_db")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "seed_db", cfg.Database.Name)
}
