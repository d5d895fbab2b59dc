// Package app is the application root: it wires every component from the
// config, owns the process-wide background work (the expiry-cleanup
// scheduler and the vault directory watcher), and hands the service layer
// to the UI.
package app

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/assets"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/config"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/layout"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/prefs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/registry"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/thumbs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/undo"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/watcher"
)

// App wires the library components together for one process lifetime.
// The caller must call Close when done.
type App struct {
	cfg     *config.Config
	layout  *layout.Layout
	backups *undo.Manager
	service *vlib.Service
	thumbs  *thumbs.Cache
	watcher *watcher.Watcher
	logger  vlib.Logger
	logFile *os.File

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a fully wired App from the given config. confirm is the
// user-facing confirmation collaborator (implemented by the UI).
func New(cfg *config.Config, confirm vlib.Confirmer) (*App, error) {
	sessionID := vlib.ShortID(vlib.UUIDGenerator{}.New())
	slogger, logFile, err := newLogger(cfg.LogDir, sessionID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	lay := layout.New(cfg.LibraryDir)
	if _, err := lay.Root(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating library root: %w", err)
	}

	clock := vlib.RealClock{}
	idgen := vlib.UUIDGenerator{}

	ps := prefs.NewStore(lay.PrefsPath(), logger)
	reg := registry.NewJSONRegistry(lay, ps, logger, clock, idgen)
	loader := assets.NewLoader(lay, logger, idgen, cfg.IncludeVideo)
	backups := undo.NewManager(lay, logger, clock, idgen, cfg.UndoWindow())
	svc := vlib.NewService(lay, reg, loader, backups, ps, confirm, logger, idgen)
	tc := thumbs.NewCache(cfg.Thumbnails.CacheSize, cfg.ThumbnailTTL(), logger)

	w, err := watcher.New(cfg.WatchDebounce(), cfg.IncludeVideo, logger)
	if err != nil {
		// The app still works without live refresh.
		logger.Warn("filesystem watcher unavailable", "error", err)
		w = nil
	}

	return &App{
		cfg:     cfg,
		layout:  lay,
		backups: backups,
		service: svc,
		thumbs:  tc,
		watcher: w,
		logger:  logger,
		logFile: logFile,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start loads the library and launches the background scheduler.
func (a *App) Start() error {
	if err := a.service.Start(); err != nil {
		return err
	}
	a.WatchCurrentVault()

	a.wg.Add(1)
	go a.runCleanup()

	a.logger.Info("library opened", "root", a.cfg.LibraryDir)
	return nil
}

// Service returns the vault operations service.
func (a *App) Service() *vlib.Service { return a.service }

// Thumbnails returns the shared thumbnail cache.
func (a *App) Thumbnails() *thumbs.Cache { return a.thumbs }

// RunCleanup sweeps expired backups once, outside the scheduler.
func (a *App) RunCleanup() (records int, files int) {
	return a.backups.CleanupExpired()
}

// RefreshEvents returns the channel of debounced external-change signals
// for the watched vault directory. Nil when the watcher is unavailable;
// receiving from a nil channel blocks forever, which is the desired
// behavior inside a select.
func (a *App) RefreshEvents() <-chan struct{} {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Events()
}

// WatchCurrentVault re-targets the watcher at the current vault's
// directory. Called after every vault switch.
func (a *App) WatchCurrentVault() {
	if a.watcher == nil {
		return
	}
	cur, err := a.service.CurrentVault()
	if err != nil {
		a.logger.Warn("resolving current vault for watcher", "error", err)
		return
	}
	dir, err := a.layout.VaultDir(cur.ID)
	if err != nil {
		a.logger.Warn("resolving vault directory for watcher", "error", err)
		return
	}
	if err := a.watcher.Watch(dir); err != nil {
		a.logger.Warn("watching vault directory", "error", err)
	}
}

// runCleanup sweeps expired backups on a fixed period for the life of the
// process.
func (a *App) runCleanup() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.cfg.CleanupPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			records, files := a.backups.CleanupExpired()
			if records > 0 || files > 0 {
				a.logger.Info("expired backups reaped", "records", records, "files", files)
			}
		}
	}
}

// Close stops background work and closes the log file.
func (a *App) Close() error {
	close(a.stopCh)
	a.wg.Wait()

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("stopping watcher", "error", err)
		}
	}

	a.logger.Info("library closed")
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
