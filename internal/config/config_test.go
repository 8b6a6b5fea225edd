package config

import (
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
db_user: "traveler"
db_name: "thuro"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SM SETUPM", cfg.Traveler.SetupWorkCenter)
	assert.Equal(t, []string{"C", "Complete", "Closed"}, cfg.Traveler.CompletionStatuses)
	assert.Equal(t, 365, cfg.Traveler.TimeWindowDays)
	assert.Equal(t, 365*24*time.Hour, cfg.Traveler.TimeWindow())
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Analysis.Model)
	assert.Equal(t, int64(2000), cfg.Analysis.MaxTokens)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, 4, cfg.Cleanup.Concurrency)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
env: "local"
http_server:
  address: "0.0.0.0:8080"
db_user: "traveler"
db_password: "secret"
db_host: "db"
db_port: 3307
db_name: "thuro"
traveler:
  setup_work_center: "SETUP"
  completion_statuses: ["C"]
  time_window_days: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "SETUP", cfg.Traveler.SetupWorkCenter)
	assert.Equal(t, []string{"C"}, cfg.Traveler.CompletionStatuses)
	assert.Equal(t, 30*24*time.Hour, cfg.Traveler.TimeWindow())

	dsn, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "traveler", dsn.User)
	assert.Equal(t, "secret", dsn.Passwd)
	assert.Equal(t, "tcp", dsn.Net)
	assert.Equal(t, "db:3307", dsn.Addr)
	assert.Equal(t, "thuro", dsn.DBName)
	assert.True(t, dsn.ParseTime)
}

func TestConfig_DSNReadsTimesInLocalZone(t *testing.T) {
	cfg := Config{
		DBUser:    "traveler",
		DBHost:    "localhost",
		DBPort:    3306,
		DBName:    "thuro",
		ParseTime: true,
	}

	dsn, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, time.Local, dsn.Loc)
}

func TestConfig_CleanupTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want time.Duration
	}{
		{
			name: "derived from batches",
			cfg:  Config{Traveler: Traveler{RequestTimeout: 5 * time.Second}, Cleanup: Cleanup{MaxJobs: 50, Concurrency: 4}},
			want: 13 * 5 * time.Second,
		},
		{
			name: "exact batches",
			cfg:  Config{Traveler: Traveler{RequestTimeout: 2 * time.Second}, Cleanup: Cleanup{MaxJobs: 8, Concurrency: 4}},
			want: 4 * time.Second,
		},
		{
			name: "zero concurrency runs one at a time",
			cfg:  Config{Traveler: Traveler{RequestTimeout: time.Second}, Cleanup: Cleanup{MaxJobs: 3}},
			want: 3 * time.Second,
		},
		{
			name: "explicit timeout wins",
			cfg:  Config{Traveler: Traveler{RequestTimeout: 5 * time.Second}, Cleanup: Cleanup{MaxJobs: 50, Concurrency: 4, Timeout: 30 * time.Second}},
			want: 30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.CleanupTimeout())
		})
	}
}

func TestLoad_RejectsNonPositiveWindow(t *testing.T) {
	path := writeConfig(t, `
db_user: "traveler"
db_name: "thuro"
traveler:
  time_window_days: -1
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
