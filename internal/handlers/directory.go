package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/i18n"
	"github.com/diewo77/invoice-desk/internal/middleware"
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
)

// DirectoryHandler serves the read-only client and item lists.
type DirectoryHandler struct {
	snapshots *services.Snapshots
	log       *zap.Logger
}

func NewDirectoryHandler(snapshots *services.Snapshots, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{snapshots: snapshots, log: log}
}

func (h *DirectoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /clients", h.Clients)
	mux.HandleFunc("GET /items", h.Items)
}

func (h *DirectoryHandler) Clients(w http.ResponseWriter, r *http.Request) {
	dir, err := h.snapshots.Directory(r.Context())
	if err != nil {
		h.log.Error("load directory", zap.Error(err))
		writeError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", nil)
		return
	}
	q := r.URL.Query().Get("q")
	clients := dir.Search(q)
	if clients == nil {
		clients = []models.Client{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients), "query": q})
}

type itemRow struct {
	models.Item
	InventoryLabel string `json:"inventory_label"`
}

func (h *DirectoryHandler) Items(w http.ResponseWriter, r *http.Request) {
	cat, err := h.snapshots.Catalog(r.Context())
	if err != nil {
		h.log.Error("load catalog", zap.Error(err))
		writeError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", nil)
		return
	}
	q := r.URL.Query().Get("q")
	unlimited := i18n.T(middleware.LangFrom(r), "unlimited")
	items := cat.Search(q)
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow{Item: it, InventoryLabel: it.InventoryLabel(unlimited)}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows), "query": q})
}
