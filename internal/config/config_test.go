package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("MIN_DESCRIPTION_LENGTH", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, int64(16*1024*1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, 100, cfg.Form.MinDescriptionLength)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("ANALYSIS_TIMEOUT", "45s")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 7, cfg.Worker.Concurrency)
	assert.Equal(t, 45*time.Second, cfg.Worker.AnalysisTimeout)
	assert.Equal(t, int64(16*1024*1024), cfg.Storage.MaxFileSize)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "resumes",
	}}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=resumes sslmode=disable", cfg.GetDatabaseDSN())
}
