package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Import      ImportConfig  `toml:"import"`
	Watch       WatchConfig   `toml:"watch"`
	Report      ReportConfig  `toml:"report"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// ImportConfig contains configuration for the document import pipeline
type ImportConfig struct {
	MaxFileSize          int64  `toml:"max_file_size"`          // Maximum document size in bytes
	TempDir              string `toml:"temp_dir"`               // Directory for stream spool files (default: OS temp)
	ScannedTextThreshold int    `toml:"scanned_text_threshold"` // Below this many extracted chars a PDF is treated as scanned
	KeepSource           bool   `toml:"keep_source"`            // Store original document bytes alongside the import result
}

// WatchConfig contains configuration for the drop-folder watcher
type WatchConfig struct {
	Enabled  bool   `toml:"enabled"`  // Enable the drop-folder watcher
	Dir      string `toml:"dir"`      // Directory scanned for new documents
	Schedule string `toml:"schedule"` // Cron schedule for scans
}

// ReportConfig contains configuration for PDF import reports
type ReportConfig struct {
	PageSize string  `toml:"page_size"` // "A4" or "Letter"
	FontSize float64 `toml:"font_size"` // Base font size in points
}

// NewDefaultConfig creates a configuration with default values
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in horarium.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development", // Default to development mode
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",                     // Info level for production (debug|info|warn|error)
			Format: "text",                     // Human-readable text format (text|json)
			Output: []string{"stdout", "file"}, // Log to both console and file
		},
		Import: ImportConfig{
			MaxFileSize:          10 * 1024 * 1024, // 10MB
			TempDir:              "",               // Empty = os.TempDir()
			ScannedTextThreshold: 100,              // PDFs with less native text fall back to OCR
			KeepSource:           false,            // Disabled by default - source bytes can be large
		},
		Watch: WatchConfig{
			Enabled:  false,           // Disabled by default - user must explicitly opt-in
			Dir:      "./inbox",       // Default drop folder
			Schedule: "*/5 * * * *",   // Every 5 minutes (cron format)
		},
		Report: ReportConfig{
			PageSize: "A4",
			FontSize: 9,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
// Priority system: CLI flags > Environment variables > Config file > Defaults
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env -> CLI
// Later files override earlier files.
// Example: LoadFromFiles("base.toml", "override.toml") - override.toml settings take precedence over base.toml
func LoadFromFiles(paths ...string) (*Config, error) {
	// Start with defaults
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier files)
	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// Apply environment variables (overrides all file configs)
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: HORARIUM_ENV, fallback: GO_ENV)
	if env := os.Getenv("HORARIUM_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Storage configuration
	if badgerPath := os.Getenv("HORARIUM_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("HORARIUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("HORARIUM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("HORARIUM_LOG_OUTPUT"); output != "" {
		// Split comma-separated output types
		outputs := []string{}
		for _, o := range splitString(output, ",") {
			trimmed := trimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Import configuration
	if maxFileSize := os.Getenv("HORARIUM_IMPORT_MAX_FILE_SIZE"); maxFileSize != "" {
		if mfs, err := strconv.ParseInt(maxFileSize, 10, 64); err == nil {
			config.Import.MaxFileSize = mfs
		}
	}
	if tempDir := os.Getenv("HORARIUM_IMPORT_TEMP_DIR"); tempDir != "" {
		config.Import.TempDir = tempDir
	}
	if threshold := os.Getenv("HORARIUM_IMPORT_SCANNED_TEXT_THRESHOLD"); threshold != "" {
		if st, err := strconv.Atoi(threshold); err == nil {
			config.Import.ScannedTextThreshold = st
		}
	}
	if keepSource := os.Getenv("HORARIUM_IMPORT_KEEP_SOURCE"); keepSource != "" {
		if ks, err := strconv.ParseBool(keepSource); err == nil {
			config.Import.KeepSource = ks
		}
	}

	// Watch configuration
	if enabled := os.Getenv("HORARIUM_WATCH_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Watch.Enabled = e
		}
	}
	if dir := os.Getenv("HORARIUM_WATCH_DIR"); dir != "" {
		config.Watch.Dir = dir
	}
	if schedule := os.Getenv("HORARIUM_WATCH_SCHEDULE"); schedule != "" {
		config.Watch.Schedule = schedule
	}

	// Report configuration
	if pageSize := os.Getenv("HORARIUM_REPORT_PAGE_SIZE"); pageSize != "" {
		config.Report.PageSize = pageSize
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, dataDir string, watchDir string) {
	// Command-line flags have highest priority
	if dataDir != "" {
		config.Storage.Badger.Path = dataDir
	}
	if watchDir != "" {
		config.Watch.Dir = watchDir
	}
}

// Helper functions for string manipulation
func splitString(s, sep string) []string {
	result := []string{}
	start := 0
	for i := 0; i < len(s); i++ {
		if i+len(sep) <= len(s) && s[i:i+len(sep)] == sep {
			result = append(result, s[start:i])
			start = i + len(sep)
			i = start - 1
		}
	}
	result = append(result, s[start:])
	return result
}

func trimSpace(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

// ValidateWatchSchedule validates a cron schedule expression and ensures minimum 5-minute interval
func ValidateWatchSchedule(schedule string) error {
	// Parse the cron expression
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	// Check for minimum 5-minute interval
	// Validate minute field (first field in standard cron)
	parts := strings.Fields(schedule)
	if len(parts) < 5 {
		return fmt.Errorf("invalid cron format: expected 5 fields")
	}

	minuteField := parts[0]

	// Check for patterns that violate 5-minute minimum
	if minuteField == "*" {
		return fmt.Errorf("schedule must have minimum 5-minute interval (every minute is not allowed)")
	}

	// Check for */n patterns where n < 5
	if strings.HasPrefix(minuteField, "*/") {
		intervalStr := strings.TrimPrefix(minuteField, "*/")
		interval, err := strconv.Atoi(intervalStr)
		if err == nil && interval < 5 {
			return fmt.Errorf("schedule interval must be at least 5 minutes, got %d", interval)
		}
	}

	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
