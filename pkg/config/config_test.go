package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Second, cfg.Registrar.Timeout)
	assert.Equal(t, 50, cfg.Registrar.PageSize)
	assert.Equal(t, 5, cfg.Registrar.RateLimit)
	assert.Equal(t, 1, cfg.Planner.Workers)
	assert.Equal(t, 10, cfg.Planner.MaxCourses)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", EnvProduction)
	t.Setenv("ENABLE_TIMETABLE_CACHE", "true")
	t.Setenv("TIMETABLE_CACHE_TTL", "90s")
	t.Setenv("REGISTRAR_BASE_URL", "http://banner.local/ssb/")
	t.Setenv("PLANNER_WORKERS", "4")
	t.Setenv("PLANNER_TIMEOUT", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "http://banner.local/ssb", cfg.Registrar.BaseURL)
	assert.Equal(t, 4, cfg.Planner.Workers)
	assert.Equal(t, 10*time.Second, cfg.Planner.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	// Set but empty so godotenv leaves the process environment alone.
	t.Setenv("PORT", "")
	t.Setenv("PLANNER_MAX_COURSES", "")
	require.NoError(t, os.WriteFile(".env", []byte("PORT=9090\nPLANNER_MAX_COURSES=6\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 6, cfg.Planner.MaxCourses)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 250*time.Millisecond, parseDuration("250ms", time.Minute))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
