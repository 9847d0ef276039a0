// Package cli implements the command-line client: cobra commands over the
// auth, resource, and discussion services, with the offline layer underneath.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"communityhub/internal/client/api"
	"communityhub/internal/client/config"
	"communityhub/internal/client/connectivity"
	"communityhub/internal/client/offline"
	"communityhub/internal/client/repositories/cache"
	"communityhub/internal/client/repositories/outbox"
	"communityhub/internal/client/repositories/session"
	"communityhub/internal/client/services"
	"communityhub/internal/logging"
)

// App holds the wired client. Commands hang off it so tests can construct an
// App around fakes.
type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	monitor     *connectivity.Monitor
	syncer      *offline.Syncer
	auth        *services.AuthService
	resources   *services.ResourceService
	discussions *services.DiscussionService
	reader      *bufio.Reader
}

// NewApp opens the local database and wires the full client stack.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := initDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewClient(cfg.ServerBaseURL)
	monitor := connectivity.NewMonitor()
	syncer := offline.NewSyncer(apiClient,
		cache.NewSQLiteRepository(db),
		outbox.NewSQLiteRepository(db),
		monitor, logger, cfg.QueueRetention)

	auth := services.NewAuthService(apiClient, session.NewSQLiteRepository(db), logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		monitor:     monitor,
		syncer:      syncer,
		auth:        auth,
		resources:   services.NewResourceService(syncer),
		discussions: services.NewDiscussionService(syncer),
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

// startBackgroundSync probes server reachability on the configured interval
// and replays queued writes on every offline-to-online transition, until ctx
// is done.
func (a *App) startBackgroundSync(ctx context.Context) {
	go a.syncer.Watch(ctx, a.config.OnlineCheckInterval)
	go a.syncer.Run(ctx)
}

// restoreSession seeds the API client from the persisted session, if any.
// Commands that need authentication call this first.
func (a *App) restoreSession(ctx context.Context) error {
	_, err := a.auth.Restore(ctx)
	return err
}
