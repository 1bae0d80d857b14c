package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/csr-atlas/pkg/config"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/partners"
	"github.com/de-tools/csr-atlas/pkg/services/reports"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/de-tools/csr-atlas/pkg/services/wizard"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb/gateway"
	"github.com/de-tools/csr-atlas/pkg/store/simulated"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App is the set of long-lived services shared by the web server and the CLI.
type App struct {
	Store      *state.Store
	Controller *async.Controller
	Reports    *reports.Service
	Wizard     *wizard.Manager
	Partners   *partners.Directory

	db *sql.DB
}

// New builds the services on top of the storage backend named in settings.
func New(ctx context.Context, settings config.Settings) (*App, error) {
	logger := zerolog.Ctx(ctx)

	gw, db, err := newGateway(ctx, settings)
	if err != nil {
		return nil, err
	}

	// The projects page opens on the fixture projects before any fetch.
	initial := state.Empty()
	initial.Projects = simulated.FixtureProjects()
	store := state.NewStore(initial)
	ctrl := async.NewController(store)
	svc := reports.NewService(store, ctrl, gw)

	logger.Info().
		Str("backend", settings.Storage.Backend).
		Dur("latency", settings.Simulation.Latency).
		Msg("services initialised")

	return &App{
		Store:      store,
		Controller: ctrl,
		Reports:    svc,
		Wizard:     wizard.NewManager(svc),
		Partners:   partners.NewDirectory(simulated.FixturePartners()),
		db:         db,
	}, nil
}

func newGateway(ctx context.Context, settings config.Settings) (reports.Gateway, *sql.DB, error) {
	switch settings.Storage.Backend {
	case config.BackendMemory:
		return simulated.NewGateway(simulated.WithLatency(settings.Simulation.Latency)), nil, nil
	case config.BackendDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.Storage.DbPath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		gw, err := gateway.NewGateway(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to create DuckDB gateway: %w", err)
		}
		if settings.Storage.Seed {
			seeded, err := gw.Seed(ctx, simulated.FixtureReports(), simulated.FixtureProjects())
			if err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("failed to seed DuckDB: %w", err)
			}
			zerolog.Ctx(ctx).Info().Bool("seeded", seeded).Str("path", settings.Storage.DbPath).Msg("DuckDB ready")
		}
		return gw, db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", settings.Storage.Backend)
	}
}

// Load runs the initial report and project fetches and waits for both.
func (a *App) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		future, err := a.Reports.FetchReports(gctx)
		if err != nil {
			return err
		}
		_, err = future.Wait(gctx)
		return err
	})
	g.Go(func() error {
		future, err := a.Reports.FetchProjects(gctx)
		if err != nil {
			return err
		}
		_, err = future.Wait(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	return nil
}

// Close stops in-flight operations and releases the database, if any.
func (a *App) Close(ctx context.Context) error {
	err := a.Controller.Shutdown(ctx)
	if a.db != nil {
		err = errors.Join(err, a.db.Close())
	}
	return err
}
