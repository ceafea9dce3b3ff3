package interfaces

import "context"

// WatcherService imports documents dropped into a watched folder on a
// cron schedule. Scans never overlap; a scan that fails is logged and the
// next one runs as scheduled.
type WatcherService interface {
	// Start begins scheduled scanning
	Start() error

	// Stop halts scheduled scanning
	Stop() error

	// RunOnce performs a single scan of the watched folder
	RunOnce(ctx context.Context) error

	// IsRunning returns true if the watcher is active
	IsRunning() bool
}
