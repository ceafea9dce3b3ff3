// -----------------------------------------------------------------------
// Application wiring - storage, pipeline services and the import
// orchestration the CLI and watcher share
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
	"github.com/ternarybob/horarium/internal/services/catalog"
	"github.com/ternarybob/horarium/internal/services/extraction"
	"github.com/ternarybob/horarium/internal/services/loader"
	"github.com/ternarybob/horarium/internal/services/matcher"
	"github.com/ternarybob/horarium/internal/services/report"
	"github.com/ternarybob/horarium/internal/services/watcher"
	"github.com/ternarybob/horarium/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Extraction pipeline
	LoaderService  interfaces.DocumentLoader
	MatcherService interfaces.EntityMatcher
	Importer       interfaces.Importer

	// Surrounding services
	CatalogService interfaces.CatalogService
	ReportService  interfaces.ReportService
	WatcherService interfaces.WatcherService
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info().
		Bool("watch_enabled", cfg.Watch.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices wires the pipeline and the services around it
func (a *App) initServices() error {
	a.LoaderService = loader.NewService(a.Config.Import, a.Logger)
	a.MatcherService = matcher.NewService(a.Logger)
	a.Importer = extraction.NewService(a.LoaderService, a.MatcherService, a.Logger)

	a.CatalogService = catalog.NewService(a.StorageManager.CatalogStorage(), a.Logger)
	a.ReportService = report.NewService(a.Config.Report, a.Logger)

	a.WatcherService = watcher.NewService(
		a.Config.Watch,
		a.ImportFile,
		a.LoaderService,
		a.StorageManager.ImportStorage(),
		a.Logger,
	)

	a.Logger.Debug().Msg("Services initialized")
	return nil
}

// ImportFile runs one import end to end: snapshot the catalog, run the
// extraction pipeline, persist the result and, when configured, the
// original document bytes. Pipeline failures come back inside the result;
// the returned error covers orchestration failures only.
func (a *App) ImportFile(ctx context.Context, path string) (*models.ImportResult, error) {
	snapshot, err := a.CatalogService.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	if snapshot.IsEmpty() {
		a.Logger.Warn().Msg("Catalog is empty, entries will not be matched")
	}

	result := a.Importer.Import(ctx, path, snapshot)

	if err := a.StorageManager.ImportStorage().SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("save import result: %w", err)
	}

	if a.Config.Import.KeepSource {
		if data, err := os.ReadFile(path); err != nil {
			a.Logger.Warn().Err(err).Str("file", path).Msg("Cannot read source document for retention")
		} else if err := a.StorageManager.BlobStorage().SaveBlob(ctx, result.ID, data); err != nil {
			a.Logger.Warn().Err(err).Str("result_id", result.ID).Msg("Failed to store source document")
		}
	}

	return result, nil
}

// Close releases application resources
func (a *App) Close() error {
	if a.WatcherService != nil && a.WatcherService.IsRunning() {
		if err := a.WatcherService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop watcher service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
