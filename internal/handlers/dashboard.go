package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	ledger    *ledger.Ledger
	snapshots *services.Snapshots
	log       *zap.Logger
}

func NewDashboardHandler(l *ledger.Ledger, snapshots *services.Snapshots, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{ledger: l, snapshots: snapshots, log: log}
}

func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /dashboard", h.Show)
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	stats := h.ledger.Stats()
	activeClients := 0
	if dir, err := h.snapshots.Directory(r.Context()); err == nil {
		activeClients = dir.Len()
	} else {
		h.log.Warn("dashboard without client count", zap.Error(err))
	}
	recent := h.ledger.List()
	if len(recent) > 5 {
		recent = recent[:5]
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"stats":          stats,
		"active_clients": activeClients,
		"recent":         recent,
	})
}
