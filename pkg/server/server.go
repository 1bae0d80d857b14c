package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cataloghandler "github.com/de-tools/csr-atlas/pkg/handlers/catalog"
	partnershandler "github.com/de-tools/csr-atlas/pkg/handlers/partners"
	reportshandler "github.com/de-tools/csr-atlas/pkg/handlers/reports"
	wizardhandler "github.com/de-tools/csr-atlas/pkg/handlers/wizard"
	csrmiddleware "github.com/de-tools/csr-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

type Dependencies struct {
	Reports  reportshandler.Service
	Wizard   wizardhandler.Manager
	Partners partnershandler.Directory
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
	// OnShutdown runs after the HTTP server has drained, with the remaining
	// shutdown budget.
	OnShutdown func(ctx context.Context) error
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	reportsH := reportshandler.NewHandler(deps.Reports)
	wizardH := wizardhandler.NewHandler(deps.Wizard, deps.Reports)
	partnersH := partnershandler.NewHandler(deps.Partners)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(csrmiddleware.Logger(&deps.Logger))
	router.Use(csrmiddleware.Metrics)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports", reportsH.ListReports)
		r.Post("/reports", reportsH.CreateReport)
		r.Get("/reports/{id}", reportsH.GetReport)
		r.Put("/reports/{id}", reportsH.UpdateReport)

		r.Get("/projects", reportsH.ListProjects)
		r.Post("/projects", reportsH.CreateProject)
		r.Put("/projects/{id}", reportsH.UpdateProject)

		r.Get("/operations/{id}", reportsH.GetOperation)
		r.Delete("/operations/{id}", reportsH.CancelOperation)

		r.Get("/dashboard", reportsH.GetDashboard)

		r.Post("/wizard", wizardH.Create)
		r.Route("/wizard/{id}", func(r chi.Router) {
			r.Get("/", wizardH.Get)
			r.Patch("/", wizardH.Patch)
			r.Delete("/", wizardH.Discard)
			r.Post("/next", wizardH.Next)
			r.Post("/previous", wizardH.Previous)
			r.Post("/frameworks/toggle", wizardH.ToggleFramework)
			r.Put("/kpis", wizardH.SetKPI)
			r.Post("/submit", wizardH.Submit)
			r.Post("/save", wizardH.Save)
			r.Post("/restore", wizardH.Restore)
			r.Get("/review", wizardH.Review)
		})

		r.Get("/partners", partnersH.List)
		r.Post("/partners", partnersH.Create)
		r.Post("/partners/sort", partnersH.Sort)

		r.Get("/catalog/frameworks", cataloghandler.ListFrameworks)
		r.Get("/catalog/kpis", cataloghandler.ListKPICategories)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until ctx is done or the process receives SIGINT/SIGTERM,
// then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
	case <-ctx.Done():
	}
	w.logger.Info().Msg("shutdown initiated")

	timeout := w.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	err := w.server.Shutdown(shutdownCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}

	if w.config.OnShutdown != nil {
		if hookErr := w.config.OnShutdown(shutdownCtx); hookErr != nil {
			w.logger.Error().Err(hookErr).Msg("shutdown hook failed")
			err = errors.Join(err, hookErr)
		}
	}
	return err
}
