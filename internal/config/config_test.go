package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("MAX_UPLOAD_SIZE", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "bad")

	cfg := LoadConfig("testdata/missing.env")

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, "tourguide", cfg.DB.DbNAME)
	assert.Equal(t, "images", cfg.MinIO.BucketName)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.PostOwnershipCheck)
	assert.Equal(t, 10, cfg.AuthRateLimit.PerMinute)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("POST_OWNERSHIP_CHECK", "true")
	t.Setenv("AUTH_RATE_BURST", "2")
	t.Setenv("MINIO_USE_SSL", "yes-please")

	cfg := LoadConfig("testdata/missing.env")

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.True(t, cfg.PostOwnershipCheck)
	assert.Equal(t, 2, cfg.AuthRateLimit.Burst)
	// unparsable bools fall back to the default
	assert.False(t, cfg.MinIO.UseSSL)
}
