// -----------------------------------------------------------------------
// Watcher Service - Imports documents dropped into a watched folder on
// a cron schedule
// -----------------------------------------------------------------------

package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// ImportFunc runs one import end to end (extract, match, persist). The
// watcher stays ignorant of that pipeline; the app wires it in.
type ImportFunc func(ctx context.Context, path string) (*models.ImportResult, error)

// Service implements interfaces.WatcherService over a drop folder
type Service struct {
	logger       arbor.ILogger
	config       common.WatchConfig
	importFn     ImportFunc
	loader       interfaces.DocumentLoader
	imports      interfaces.ImportStorage
	cron         *cron.Cron
	mu           sync.Mutex // Protects isProcessing
	isProcessing bool
	running      bool
}

// Compile-time assertion
var _ interfaces.WatcherService = (*Service)(nil)

// NewService creates a new watcher service
func NewService(config common.WatchConfig, importFn ImportFunc, loader interfaces.DocumentLoader, imports interfaces.ImportStorage, logger arbor.ILogger) *Service {
	return &Service{
		logger:   logger,
		config:   config,
		importFn: importFn,
		loader:   loader,
		imports:  imports,
		cron:     cron.New(),
	}
}

// Start begins scheduled scanning of the watch folder
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("watcher already running")
	}

	schedule := s.config.Schedule
	if schedule == "" {
		schedule = "*/5 * * * *" // Default: every 5 minutes
	}
	if err := common.ValidateWatchSchedule(schedule); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if _, err := s.cron.AddFunc(schedule, s.runScheduledScan); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("dir", s.config.Dir).
		Str("schedule", schedule).
		Msg("Watcher started")

	return nil
}

// Stop halts scheduled scanning
func (s *Service) Stop() error {
	if !s.running {
		return nil
	}

	s.cron.Stop()
	s.running = false

	s.logger.Info().Msg("Watcher stopped")
	return nil
}

// IsRunning returns true if the watcher is active
func (s *Service) IsRunning() bool {
	return s.running
}

// runScheduledScan wraps RunOnce with overlap protection and panic
// recovery so one bad scan never takes the cron loop down.
func (s *Service) runScheduledScan() {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := common.GetStackTrace()
			s.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", stackTrace).
				Msg("PANIC RECOVERED in watch folder scan - writing crash file")

			// Write crash file for reliable persistence. The cron loop
			// itself stays up.
			common.WriteCrashFile(r, stackTrace)
		}
	}()

	s.mu.Lock()
	if s.isProcessing {
		s.logger.Debug().Msg("Previous scan still running, skipping this cycle")
		s.mu.Unlock()
		return
	}
	s.isProcessing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isProcessing = false
		s.mu.Unlock()
	}()

	if err := s.RunOnce(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("Watch folder scan failed")
	}
}

// RunOnce performs a single scan of the watched folder. Files already
// imported and unmodified since are skipped; individual import failures
// are logged and do not stop the scan.
func (s *Service) RunOnce(ctx context.Context) error {
	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		return fmt.Errorf("read watch dir %s: %w", s.config.Dir, err)
	}

	imported := 0
	skipped := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if _, err := s.loader.Detect(entry.Name()); err != nil {
			skipped++
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("Cannot stat file, skipping")
			skipped++
			continue
		}

		if s.alreadyImported(ctx, entry.Name(), info.ModTime()) {
			skipped++
			continue
		}

		path := filepath.Join(s.config.Dir, entry.Name())
		result, err := s.importFn(ctx, path)
		if err != nil {
			failed++
			s.logger.Error().Err(err).Str("file", entry.Name()).Msg("Drop folder import failed")
			continue
		}

		imported++
		s.logger.Info().
			Str("file", entry.Name()).
			Str("result_id", result.ID).
			Bool("success", result.Success).
			Int("entries", result.EntryCount).
			Msg("Drop folder document imported")
	}

	s.logger.Info().
		Str("dir", s.config.Dir).
		Int("imported", imported).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("Watch folder scan complete")

	return nil
}

// alreadyImported reports whether the file has a recorded import at least
// as recent as its modification time. A re-saved file imports again.
func (s *Service) alreadyImported(ctx context.Context, fileName string, modTime time.Time) bool {
	latest, err := s.imports.GetLatestForFile(ctx, fileName)
	if err != nil {
		return false
	}
	return !modTime.After(latest.CreatedAt)
}
