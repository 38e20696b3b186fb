package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/ui"
	"github.com/tgienger/todo/internal/ui/styles"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run starts the program and returns the process exit code once every
// deferred cleanup has run
func run() int {
	showVersion := pflag.BoolP("version", "v", false, "print version and exit")
	pflag.Parse()
	if *showVersion {
		fmt.Printf("todo %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	// Resolve data directory; without one the store runs memory-only
	dir, dirErr := config.Dir()

	cfg := config.Default()
	var cfgErr error
	if dirErr == nil {
		cfg, cfgErr = config.Load(dir)
	}

	logger := logging.Discard()
	if dirErr == nil {
		if l, err := logging.New(filepath.Join(dir, config.LogFile), cfg.LogLevel); err == nil {
			logger = l
		}
	}
	defer logger.Close()

	if dirErr != nil {
		logger.Warn("no data directory, changes will not be saved", "err", dirErr)
	}
	if cfgErr != nil {
		logger.Warn("invalid config, using defaults", "err", cfgErr)
	}
	styles.Use(cfg.Theme)

	backend, closeBackend := openBackend(dir, dirErr == nil, cfg, logger)
	defer closeBackend()

	// Create and run the application
	app := ui.NewApp(store.New(backend, logger.Logger))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		return 1
	}
	return 0
}

// openBackend picks the storage backend named in cfg. A SQLite database
// that cannot be opened falls back to the JSON file.
func openBackend(dir string, ok bool, cfg *config.Config, logger *logging.Logger) (store.Backend, func()) {
	if !ok {
		return nil, func() {}
	}

	if cfg.Storage == config.StorageSQLite {
		database, err := db.New(dir)
		if err == nil {
			logger.Info("using sqlite storage", "dir", dir)
			return database, func() { database.Close() }
		}
		logger.Warn("sqlite unavailable, using json", "err", err)
	}

	file := db.NewJSONFile(dir)
	logger.Info("using json storage", "path", file.Path())
	return file, func() {}
}
