package main

import (
	"fmt"
	"net/http"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/catalog"
	"github.com/diewo77/invoice-desk/internal/config"
	"github.com/diewo77/invoice-desk/internal/directory"
	"github.com/diewo77/invoice-desk/internal/fixtures"
	"github.com/diewo77/invoice-desk/internal/handlers"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/middleware"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	db      *gorm.DB
	log     *zap.Logger

	ledger    *ledger.Ledger
	snapshots *services.Snapshots
	drafts    *services.DraftService
}

// NewApp wires the services on top of db and registers every route.
func NewApp(db *gorm.DB, cfg *config.Config, log *zap.Logger) (*App, error) {
	policy, err := builder.ParseQuantityPolicy(cfg.Invoice.QuantityPolicy)
	if err != nil {
		return nil, fmt.Errorf("INVOICE_QUANTITY_POLICY: %w", err)
	}

	l := ledger.New(log.Named("ledger"), fixtures.Invoices()...)
	snapshots := services.NewSnapshots(catalog.NewRepository(db), directory.NewRepository(db), cfg.App.CatalogCacheTTL)
	drafts := services.NewDraftService(snapshots, l, services.DraftSettings{
		StrictSave:     cfg.Invoice.StrictSave,
		QuantityPolicy: policy,
		Lang:           cfg.Invoice.Lang,
	}, log.Named("drafts"))

	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		log:       log,
		ledger:    l,
		snapshots: snapshots,
		drafts:    drafts,
	}
	app.setupRoutes()
	app.handler = middleware.Recover(log)(middleware.Logging(log)(middleware.Prefs(app.mux)))
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	a.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	a.mux.HandleFunc("GET /healthz", a.healthz)

	handlers.NewDashboardHandler(a.ledger, a.snapshots, a.log).Register(a.mux)
	handlers.NewInvoiceHandler(a.ledger, a.log).Register(a.mux)
	handlers.NewDirectoryHandler(a.snapshots, a.log).Register(a.mux)
	handlers.NewDraftHandler(a.drafts, a.log).Register(a.mux)
}

// healthz performs a lightweight DB check (SELECT 1).
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
