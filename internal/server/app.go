// Package server wires the credvault server together: it picks the
// credential store, builds the credential service, and runs the gRPC and
// HTTP servers until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/passhash"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/httpapi"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credvault/internal/server/services"

	gs "github.com/dmitrijs2005/credvault/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials *services.CredentialService
}

// NewApp builds the App described by c, logging to w. With an empty
// DatabaseDSN credentials live in memory, optionally seeded from SeedFile;
// otherwise Postgres is opened and migrated.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(w, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	store, err := app.initStore(ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := passhash.NewHasher(c.HashCost(), c.HashConcurrency)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.credentials, err = services.NewCredentialService(store, hasher, logger, c.StoreTimeout)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("service init error: %w", err)
	}

	return app, nil
}

func (app *App) initStore(ctx context.Context) (services.CredentialStore, error) {
	if app.config.DatabaseDSN == "" {
		repo := credentials.NewMemoryRepository()
		if app.config.SeedFile != "" {
			n, err := repo.LoadFile(ctx, app.config.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("seed error: %w", err)
			}
			app.logger.Info(ctx, "Seeded in-memory store", "credentials", n)
		}
		app.logger.Info(ctx, "Using in-memory credential store")
		return repo, nil
	}

	db, err := repomanager.Open(ctx, app.config.DatabaseDSN, app.config.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app.db = db
	app.logger.Info(ctx, "Using Postgres credential store", "max_open_conns", app.config.MaxOpenConns)
	return repomanager.NewPostgresStore(db, m), nil
}

// Close releases the database pool, if any.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "Server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for both servers to stop and closes the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.credentials))
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.start(ctx, cancelFunc, "http", httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.credentials))
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
