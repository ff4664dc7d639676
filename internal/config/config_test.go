package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, StorageTypeLocal, cfg.Storage.Type)
	assert.Equal(t, 1, cfg.LeaveAlert.LookaheadDays)
	assert.Equal(t, time.Hour, cfg.LeaveAlert.Interval)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
	assert.Equal(t, 6*time.Hour, cfg.LowStock.Interval)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ObjectStoreRequiresBucket(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_TYPE", StorageTypeObjectStore)
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")

	t.Setenv("S3_BUCKET", "guardforce-files")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "guardforce-files", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.UsePathStyle)
}

func TestValidate_UnknownStorageType(t *testing.T) {
	cfg := &Config{
		Database:   DatabaseConfig{Password: "x", MaxConns: 2, MinConns: 1},
		JWT:        JWTConfig{Secret: "y"},
		Storage:    StorageConfig{Type: "ftp"},
		LeaveAlert: LeaveAlertConfig{Interval: time.Minute},
		LowStock:   LowStockConfig{Interval: time.Minute},
	}
	assert.Error(t, cfg.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_AutoMigrate(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.AutoMigrate)

	t.Setenv("DB_AUTO_MIGRATE", "true")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.AutoMigrate)
}
