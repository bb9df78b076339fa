package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "trip_planner", cfg.Database.DBName)
	assert.Equal(t, "09:00", cfg.Planner.DayStart)
	assert.Equal(t, 15, cfg.Planner.TravelBufferMins)
	assert.Equal(t, 4, cfg.Planner.AttractionsPerDay)
	assert.Equal(t, 7, cfg.Planner.LeadTimeDays)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.NewRelic.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PLANNER_TRAVEL_BUFFER_MINUTES", "30")
	t.Setenv("SESSION_LOCK_TTL", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PLANNER_ATTRACTIONS_PER_DAY", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Planner.TravelBufferMins)
	assert.Equal(t, 3*time.Second, cfg.Session.LockTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 4, cfg.Planner.AttractionsPerDay)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nSERVER_PORT=9999\n"), 0o600))
	t.Setenv("SERVER_PORT", "7000")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "7000", cfg.Server.Port, "existing environment wins over .env")
}
