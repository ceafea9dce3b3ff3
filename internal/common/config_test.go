package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, int64(10*1024*1024), config.Import.MaxFileSize)
	assert.Equal(t, 100, config.Import.ScannedTextThreshold)
	assert.False(t, config.Watch.Enabled)
	assert.Equal(t, "*/5 * * * *", config.Watch.Schedule)
	assert.Equal(t, "A4", config.Report.PageSize)
	assert.False(t, config.IsProduction())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "horarium.toml")

	content := `
environment = "production"

[storage.badger]
path = "/var/lib/horarium"

[logging]
level = "debug"
output = ["stdout"]

[import]
max_file_size = 1048576

[watch]
enabled = true
dir = "/srv/inbox"
schedule = "*/10 * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "/var/lib/horarium", config.Storage.Badger.Path)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, []string{"stdout"}, config.Logging.Output)
	assert.Equal(t, int64(1048576), config.Import.MaxFileSize)
	assert.True(t, config.Watch.Enabled)
	assert.Equal(t, "/srv/inbox", config.Watch.Dir)

	// Unset fields keep defaults
	assert.Equal(t, 100, config.Import.ScannedTextThreshold)
	assert.Equal(t, "A4", config.Report.PageSize)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/horarium.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HORARIUM_ENV", "production")
	t.Setenv("HORARIUM_BADGER_PATH", "/tmp/env-badger")
	t.Setenv("HORARIUM_LOG_LEVEL", "warn")
	t.Setenv("HORARIUM_LOG_OUTPUT", "stdout, file")
	t.Setenv("HORARIUM_IMPORT_MAX_FILE_SIZE", "2048")
	t.Setenv("HORARIUM_WATCH_ENABLED", "true")
	t.Setenv("HORARIUM_WATCH_SCHEDULE", "*/15 * * * *")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "/tmp/env-badger", config.Storage.Badger.Path)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
	assert.Equal(t, int64(2048), config.Import.MaxFileSize)
	assert.True(t, config.Watch.Enabled)
	assert.Equal(t, "*/15 * * * *", config.Watch.Schedule)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, "/flag/data", "/flag/inbox")
	assert.Equal(t, "/flag/data", config.Storage.Badger.Path)
	assert.Equal(t, "/flag/inbox", config.Watch.Dir)

	// Empty flags leave config untouched
	ApplyFlagOverrides(config, "", "")
	assert.Equal(t, "/flag/data", config.Storage.Badger.Path)
	assert.Equal(t, "/flag/inbox", config.Watch.Dir)
}

func TestValidateWatchSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "every five minutes", schedule: "*/5 * * * *", wantErr: false},
		{name: "hourly", schedule: "0 * * * *", wantErr: false},
		{name: "every minute rejected", schedule: "* * * * *", wantErr: true},
		{name: "two minute interval rejected", schedule: "*/2 * * * *", wantErr: true},
		{name: "malformed", schedule: "not-cron", wantErr: true},
		{name: "too few fields", schedule: "*/5 *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWatchSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
