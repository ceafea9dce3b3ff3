// -----------------------------------------------------------------------
// Horarium CLI - schedule extraction from office documents
// -----------------------------------------------------------------------

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/app"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/models"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	dataDir      = flag.String("data", "", "Badger data directory (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Horarium - schedule extraction from office documents

Usage:
  horarium [flags] <command>

Commands:
  import <file> [-report out.pdf] [-json]   Import a document and print the result
  catalog load <file.yaml>                  Load a catalog seed file
  catalog show                              Show the stored catalogs
  watch                                     Watch the drop folder until interrupted
  results [-n N]                            List recent import results

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	// Crash protection: anything that escapes command handling lands in a
	// crash file under the log directory before the process exits.
	common.InstallCrashHandler("")
	defer common.RecoverWithCrashFile()

	flag.Usage = usage
	flag.Parse()

	// Handle version flag
	if *showVersion || *showVersionV {
		fmt.Printf("Horarium version %s\n", common.GetVersion())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner
	var err error

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("horarium.toml"); err == nil {
			configFiles = append(configFiles, "horarium.toml")
		}
	}

	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, *dataDir, "")

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Debug().
		Strs("config_files", configFiles).
		Str("badger_path", config.Storage.Badger.Path).
		Str("log_level", config.Logging.Level).
		Msg("Resolved configuration")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	var cmdErr error
	switch args[0] {
	case "import":
		cmdErr = runImport(application, args[1:])
	case "catalog":
		cmdErr = runCatalog(application, args[1:])
	case "watch":
		cmdErr = runWatch(application)
	case "results":
		cmdErr = runResults(application, args[1:])
	default:
		usage()
		cmdErr = fmt.Errorf("unknown command: %s", args[0])
	}

	if closeErr := application.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("Shutdown cleanup failed")
	}

	if cmdErr != nil {
		logger.Error().Err(cmdErr).Msg("Command failed")
		os.Exit(1)
	}
}

// runImport imports one document and prints the outcome. The process
// exits non-zero when the pipeline reports failure.
func runImport(application *app.App, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	reportPath := fs.String("report", "", "Write a PDF import report to this path")
	asJSON := fs.Bool("json", false, "Print the import result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: horarium import <file> [-report out.pdf] [-json]")
	}
	file := fs.Arg(0)
	// Allow flags after the file argument as well
	if fs.NArg() > 1 {
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return err
		}
	}

	result, err := application.ImportFile(context.Background(), file)
	if err != nil {
		return err
	}

	if *asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printResult(result)
	}

	if *reportPath != "" {
		markdown := application.ReportService.BuildMarkdown(result)
		pdfBytes, err := application.ReportService.RenderPDF(markdown, "Import Report - "+result.FileName)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		if err := os.WriteFile(*reportPath, pdfBytes, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", *reportPath)
	}

	if !result.Success {
		return fmt.Errorf("import failed: %s", result.Error)
	}
	return nil
}

func printResult(result *models.ImportResult) {
	status := "OK"
	if !result.Success {
		status = "FAILED"
	}
	fmt.Printf("%s  %s (%s", status, result.FileName, result.Format)
	if result.OCRUsed {
		fmt.Printf(", OCR")
	}
	fmt.Printf(")  %d entries in %dms\n", result.EntryCount, result.DurationMs)

	if result.Error != "" {
		fmt.Printf("  error: %s\n", result.Error)
	}

	for _, entry := range result.Entries {
		fmt.Printf("  %s\n", describeEntry(entry))
	}

	courses, teachers, rooms := result.MatchedCounts()
	if result.EntryCount > 0 {
		fmt.Printf("Matched: %d courses, %d teachers, %d rooms\n", courses, teachers, rooms)
	}
}

func describeEntry(entry models.ScheduleEntry) string {
	out := ""
	if entry.Day != "" {
		out += string(entry.Day) + " "
	}
	if entry.Period != 0 {
		out += fmt.Sprintf("period %d ", entry.Period)
	}
	if entry.StartTime != nil {
		out += entry.StartTime.Format()
		if entry.EndTime != nil {
			out += " - " + entry.EndTime.Format()
		}
		out += " "
	}
	out += entry.CourseName
	if entry.TeacherName != "" {
		out += " / " + entry.TeacherName
	}
	if entry.RoomNumber != "" {
		out += " / room " + entry.RoomNumber
	}
	if entry.CourseID == 0 && entry.CourseName != "" {
		out += "  (unmatched)"
	}
	return out
}

// runCatalog handles the catalog subcommands (load, show)
func runCatalog(application *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: horarium catalog <load|show> [file.yaml]")
	}

	ctx := context.Background()

	switch args[0] {
	case "load":
		if len(args) < 2 {
			return fmt.Errorf("usage: horarium catalog load <file.yaml>")
		}
		result, err := application.CatalogService.LoadFile(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d courses, %d teachers, %d rooms\n", result.Courses, result.Teachers, result.Rooms)
		return nil

	case "show":
		snapshot, err := application.CatalogService.Snapshot(ctx)
		if err != nil {
			return err
		}
		if snapshot.IsEmpty() {
			fmt.Println("Catalog is empty - load one with: horarium catalog load <file.yaml>")
			return nil
		}

		fmt.Printf("Courses (%d):\n", len(snapshot.Courses))
		for _, course := range snapshot.Courses {
			if course.Code != "" {
				fmt.Printf("  %4d  %s (%s)\n", course.ID, course.Name, course.Code)
			} else {
				fmt.Printf("  %4d  %s\n", course.ID, course.Name)
			}
		}

		fmt.Printf("Teachers (%d):\n", len(snapshot.Teachers))
		for _, teacher := range snapshot.Teachers {
			flag := ""
			if !teacher.Active {
				flag = "  (inactive)"
			}
			fmt.Printf("  %4d  %s%s\n", teacher.ID, teacher.FullName(), flag)
		}

		fmt.Printf("Rooms (%d):\n", len(snapshot.Rooms))
		for _, room := range snapshot.Rooms {
			fmt.Printf("  %4d  %s\n", room.ID, room.Number)
		}
		return nil

	default:
		return fmt.Errorf("unknown catalog command: %s", args[0])
	}
}

// runWatch blocks scanning the drop folder until SIGINT/SIGTERM
func runWatch(application *app.App) error {
	if !config.Watch.Enabled {
		return fmt.Errorf("drop-folder watcher is disabled - set watch.enabled = true in configuration")
	}

	if err := application.WatcherService.Start(); err != nil {
		return err
	}

	// Scan immediately rather than waiting out the first cron interval
	if err := application.WatcherService.RunOnce(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("Initial scan failed")
	}

	logger.Info().
		Str("dir", config.Watch.Dir).
		Str("schedule", config.Watch.Schedule).
		Msg("Watching drop folder - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received")
	return application.WatcherService.Stop()
}

// runResults lists recent import results, newest first
func runResults(application *app.App, args []string) error {
	fs := flag.NewFlagSet("results", flag.ContinueOnError)
	limit := fs.Int("n", 20, "Maximum number of results to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	results, err := application.StorageManager.ImportStorage().ListResults(context.Background(), *limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No import results recorded")
		return nil
	}

	for _, result := range results {
		status := "OK"
		if !result.Success {
			status = "FAILED"
		}
		fmt.Printf("%s  %-6s  %-30s  %3d entries  %s\n",
			result.CreatedAt.Format("2006-01-02 15:04:05"),
			status,
			result.FileName,
			result.EntryCount,
			result.ID)
	}
	return nil
}
