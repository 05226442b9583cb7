package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func prepareField(t *testing.T, f Field) {
	t.Helper()

	f.FillDefaults()
	require.Empty(t, f.Validate())
}

func TestSubConfigDefaults(t *testing.T) {
	type testCase struct {
		name  string
		field Field
	}

	testCases := []testCase{
		{name: "Database config", field: &DatabaseConfig{}},
		{name: "Retry config", field: &RetryConfig{}},
		{name: "HTTP config", field: &HTTPConfig{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { prepareField(t, tc.field) })
	}
}

func TestRunConfigDefaults(t *testing.T) {
	cfg := &RunConfig{}
	require.NoError(t, cfg.PostProcess())

	require.Equal(t, uint64(1000), cfg.PageSize)
	require.Equal(t, StrategyOffset, cfg.FetchStrategy)
	require.Equal(t, ".retoken/checkpoint.json", cfg.CheckpointPath)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "file:tickets.db", cfg.Database.DSN)
	require.Equal(t, 3, cfg.Retry.Attempts)
	require.Equal(t, 500*time.Millisecond, cfg.Retry.Delay)
}

func TestRunConfigParseFromFile(t *testing.T) {
	path := writeConfigFile(t, "run.yml", `
database:
  driver: postgres
  dsn: postgres://localhost:5432/tickets
page_size: 250
fetch_strategy: keyset
checkpoint_path: /var/lib/retoken/checkpoint.json
retry:
  attempts: 5
  delay: 2s
`)

	cfg := &RunConfig{}
	require.NoError(t, cfg.ParseFromFile(path))

	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "postgres://localhost:5432/tickets", cfg.Database.DSN)
	require.Equal(t, uint64(250), cfg.PageSize)
	require.Equal(t, StrategyKeyset, cfg.FetchStrategy)
	require.Equal(t, "/var/lib/retoken/checkpoint.json", cfg.CheckpointPath)
	require.Equal(t, 5, cfg.Retry.Attempts)
	require.Equal(t, 2*time.Second, cfg.Retry.Delay)
}

func TestRunConfigParseFromJSON(t *testing.T) {
	data := []byte(`{"database": {"driver": "sqlite", "dsn": "file:test.db"}, "page_size": 50}`)

	cfg := &RunConfig{}
	require.NoError(t, cfg.ParseFromJSON(data))

	require.Equal(t, uint64(50), cfg.PageSize)
	require.Equal(t, "file:test.db", cfg.Database.DSN)
}

func TestRunConfigValidate(t *testing.T) {
	type testCase struct {
		name   string
		config RunConfig
		errMsg string
	}

	testCases := []testCase{
		{
			name: "Unknown fetch strategy",
			config: RunConfig{
				FetchStrategy: "random",
			},
			errMsg: "unknown fetch strategy",
		},
		{
			name: "Unknown database driver",
			config: RunConfig{
				Database: DatabaseConfig{Driver: "oracle", DSN: "oracle://"},
			},
			errMsg: "unknown database driver",
		},
		{
			name: "Empty postgres DSN",
			config: RunConfig{
				Database: DatabaseConfig{Driver: DriverPostgres},
			},
			errMsg: "DSN should not be empty",
		},
		{
			name: "Negative retry attempts",
			config: RunConfig{
				Retry: RetryConfig{Attempts: -1},
			},
			errMsg: "retry attempts should be at least 1",
		},
		{
			name: "Negative retry delay",
			config: RunConfig{
				Retry: RetryConfig{Attempts: 3, Delay: -time.Second},
			},
			errMsg: "retry delay should not be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.PostProcess()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestRunConfigUnknownFieldRejected(t *testing.T) {
	path := writeConfigFile(t, "run.yml", `
page_size: 100
unknown_option: true
`)

	cfg := &RunConfig{}
	require.Error(t, cfg.ParseFromFile(path))
}
