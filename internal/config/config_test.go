package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig_MatchesBreathDefaults(t *testing.T) {
	cfg := DefaultConfig()
	timing := cfg.BreathTiming()

	assert.Equal(t, 4*time.Second, timing.Inhale)
	assert.Equal(t, 2*time.Second, timing.Hold)
	assert.Equal(t, 4*time.Second, timing.Exhale)
	assert.Equal(t, time.Second, timing.Gap)
	assert.Equal(t, 4, timing.Beats)
	assert.Equal(t, 33*time.Millisecond, timing.FrameInterval)
	assert.Equal(t, -1, cfg.FreeSessionQuota)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
db_path: /tmp/from-file.db
free_session_quota: 5
timing:
  inhale_sec: 5
  hold_sec: 3
server:
  addr: "localhost:9000"
`)
	t.Setenv("ERA_CONFIG", path)
	t.Setenv("ERA_HOLD_SEC", "1.5")
	t.Setenv("ERA_PRO", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.FreeSessionQuota)
	assert.Equal(t, 5.0, cfg.Timing.InhaleSec)
	assert.Equal(t, 1.5, cfg.Timing.HoldSec)
	assert.Equal(t, 4.0, cfg.Timing.ExhaleSec, "unset keys keep defaults")
	assert.True(t, cfg.Pro)
	assert.Equal(t, "localhost:9000", cfg.Server.Addr)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv("ERA_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_DefaultDBPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ERA_CONFIG", "")
	t.Setenv("ERA_DB", "")
	t.Setenv("ERA_DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".era", "era.db"), cfg.DBPath)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()
	err := LoadFile(writeFile(t, "inhale: 4\n"), &cfg)
	assert.Error(t, err)
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("ERA_BEATS", "many")
	t.Setenv("ERA_PRO", "sometimes")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	assert.Equal(t, 4, cfg.Timing.Beats)
	assert.False(t, cfg.Pro)
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.DBPath = "/tmp/era.db"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no store", func(c *Config) { c.DBPath = "" }},
		{"bad database url", func(c *Config) { c.DatabaseURL = "not a url" }},
		{"negative inhale", func(c *Config) { c.Timing.InhaleSec = -1 }},
		{"zero beats", func(c *Config) { c.Timing.Beats = 0 }},
		{"quota below -1", func(c *Config) { c.FreeSessionQuota = -2 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad addr", func(c *Config) { c.Server.Addr = "nope" }},
		{"zero rate", func(c *Config) { c.Server.RateLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_PostgresWithoutDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DatabaseURL = "postgres://era@localhost/era?sslmode=disable"
	assert.NoError(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestBindTimingFlags_OverridesOnlySetFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.HoldSec = 3

	fs := pflag.NewFlagSet("breathe", pflag.ContinueOnError)
	BindTimingFlags(fs, &cfg.Timing)
	require.NoError(t, fs.Parse([]string{"--inhale", "6"}))

	assert.Equal(t, 6.0, cfg.Timing.InhaleSec)
	assert.Equal(t, 3.0, cfg.Timing.HoldSec)
}

func TestTimingConfig_Validate(t *testing.T) {
	tc := DefaultConfig().Timing
	require.NoError(t, tc.Validate())

	tc.InhaleSec = -1
	assert.Error(t, tc.Validate())

	tc = DefaultConfig().Timing
	tc.Beats = 0
	assert.Error(t, tc.Validate())
}
