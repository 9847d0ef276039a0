package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/client/api"
	"communityhub/internal/client/config"
	"communityhub/internal/client/connectivity"
	"communityhub/internal/client/models"
	"communityhub/internal/client/offline"
	"communityhub/internal/client/repositories/cache"
	"communityhub/internal/client/repositories/outbox"
	"communityhub/internal/client/repositories/session"
	"communityhub/internal/client/services"
	"communityhub/internal/logging"
)

// newTestApp wires a full App over a temp database and the given backend,
// with stdin scripted from input.
func newTestApp(t *testing.T, backendURL, input string) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = backendURL
	cfg.DatabasePath = filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	db, err := initDatabase(ctx, cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	apiClient := api.NewClient(cfg.ServerBaseURL)
	monitor := connectivity.NewMonitor()
	syncer := offline.NewSyncer(apiClient,
		cache.NewSQLiteRepository(db), outbox.NewSQLiteRepository(db),
		monitor, logger, cfg.QueueRetention)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		monitor:     monitor,
		syncer:      syncer,
		auth:        services.NewAuthService(apiClient, session.NewSQLiteRepository(db), logger),
		resources:   services.NewResourceService(syncer),
		discussions: services.NewDiscussionService(syncer),
		reader:      bufio.NewReader(strings.NewReader(input)),
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_ListsSubcommands(t *testing.T) {
	app := newTestApp(t, "http://localhost:1", "")

	out, err := execute(t, app, "--help")
	require.NoError(t, err)

	for _, name := range []string{"register", "login", "logout", "profile", "status", "sync", "watch", "resource", "discussion"} {
		assert.Contains(t, out, name)
	}
}

func TestLoginCommand_EstablishesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/login", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-1"})
		_ = json.NewEncoder(w).Encode(map[string]string{
			"userId": "u1", "name": "Ada", "email": "a@x.com", "token": "access-1",
		})
	}))
	defer srv.Close()

	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { readPassword = orig })

	app := newTestApp(t, srv.URL, "a@x.com\n")

	out, err := execute(t, app, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ada")
	assert.True(t, app.auth.LoggedIn(context.Background()))
}

func TestResourceListCommand_ShowsCacheNotice(t *testing.T) {
	down := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down {
			panic(http.ErrAbortHandler)
		}
		_, _ = w.Write([]byte(`[{"_id":"r1","title":"Food bank","category":"food"}]`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, "")
	// Seed a session so commands pass the sign-in gate.
	seedSession(t, app)

	out, err := execute(t, app, "resource", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Food bank")
	assert.NotContains(t, out, "cached copy")

	down = true
	out, err = execute(t, app, "resource", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cached copy")
	assert.Contains(t, out, "Food bank")
}

func seedSession(t *testing.T, app *App) {
	t.Helper()
	repo := session.NewSQLiteRepository(app.db)
	require.NoError(t, repo.Save(context.Background(), &models.Session{
		UserID: "u1", Name: "Ada", AccessToken: "access-1", RefreshToken: "refresh-1",
	}))
}

// Every invocation hosts the watcher, so a write queued while the server was
// down is replayed as soon as reachability returns, without a manual sync.
func TestBackgroundSync_ReplaysQueuedWritesOnReconnect(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	var replayed atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			panic(http.ErrAbortHandler)
		}
		if r.Method == "DELETE" && r.URL.Path == "/api/resources/r1" {
			replayed.Add(1)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, "")
	app.config.OnlineCheckInterval = 20 * time.Millisecond
	seedSession(t, app)

	out, err := execute(t, app, "resource", "delete", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "will be sent when back online")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.startBackgroundSync(ctx)

	down.Store(false)
	require.Eventually(t, func() bool {
		return replayed.Load() > 0
	}, 5*time.Second, 20*time.Millisecond, "queued delete was not replayed after reconnect")

	require.Eventually(t, func() bool {
		pending, err := outbox.NewSQLiteRepository(app.db).ListPending(context.Background(), outbox.QueueResources)
		return err == nil && len(pending) == 0
	}, 5*time.Second, 20*time.Millisecond, "outbox was not drained")
}

func TestResourceDeleteCommand_QueuesWhenOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable

	app := newTestApp(t, srv.URL, "")
	seedSession(t, app)

	out, err := execute(t, app, "resource", "delete", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "will be sent when back online")

	pending, err := outbox.NewSQLiteRepository(app.db).ListPending(context.Background(), outbox.QueueResources)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "DELETE", pending[0].Method)
}
