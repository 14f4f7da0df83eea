// Package cli implements the interactive Sangam client: a small REPL that
// exercises registration, login, session restore, chat, and interests
// against the backend API.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/sangamlabs/sangam/internal/client/api"
	"github.com/sangamlabs/sangam/internal/client/appstate"
	"github.com/sangamlabs/sangam/internal/client/chat"
	"github.com/sangamlabs/sangam/internal/client/config"
	"github.com/sangamlabs/sangam/internal/client/session"
	"github.com/sangamlabs/sangam/internal/client/store"
	"github.com/sangamlabs/sangam/internal/client/tasks"
	"github.com/sangamlabs/sangam/internal/filex"
	"github.com/sangamlabs/sangam/internal/logging"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	store    store.Store
	sessions *session.Manager
	state    *appstate.State
	api      *api.Client
	chat     *chat.Service
	tasks    *tasks.Runner
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	dsn, err := filex.ResolveStorePath(cfg.StoreDSN)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	st := store.NewSQLiteStore(db)
	sessions := session.NewManager(st, log)

	client := api.New(api.Options{
		BaseURL: cfg.Endpoints().BaseURL,
		Tokens:  sessions,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})

	return &App{
		config:   cfg,
		db:       db,
		store:    st,
		sessions: sessions,
		state:    appstate.New(sessions, st, log),
		api:      client,
		chat:     chat.NewService(client, chat.NewCache(0), log),
		tasks:    tasks.NewRunner(log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session (silently routing to login when it expired) and
// enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.state.Init(ctx)
	if a.state.IsAuthenticated() {
		a.syncDeviceToken(ctx)
	}

	a.Root(ctx)
	return nil
}

func (a *App) Close() {
	a.tasks.Wait()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.state.IsAuthenticated()
}
