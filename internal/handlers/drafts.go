package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
)

type DraftHandler struct {
	drafts *services.DraftService
	log    *zap.Logger
}

func NewDraftHandler(drafts *services.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, log: log}
}

func (h *DraftHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /drafts", h.Create)
	mux.HandleFunc("GET /drafts/{id}", h.Get)
	mux.HandleFunc("DELETE /drafts/{id}", h.Cancel)
	mux.HandleFunc("PUT /drafts/{id}/client", h.SelectClient)
	mux.HandleFunc("PUT /drafts/{id}/dates", h.SetDates)
	mux.HandleFunc("POST /drafts/{id}/lines", h.AddLine)
	mux.HandleFunc("PATCH /drafts/{id}/lines/{index}", h.UpdateLine)
	mux.HandleFunc("DELETE /drafts/{id}/lines/{index}", h.RemoveLine)
	mux.HandleFunc("POST /drafts/{id}/save", h.Save)
}

func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := h.drafts.Open(r.Context())
	if err != nil {
		h.log.Error("open draft", zap.Error(err))
		writeError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.drafts.Get(r.PathValue("id"))
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *DraftHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.Cancel(r.PathValue("id")); err != nil {
		mapError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) SelectClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	h.update(w, r, func(b *builder.Builder) error { return b.SelectClient(req.ClientID) })
}

// SetDates replaces the issue and/or due date. The two are not validated
// against each other; an inverted range only shows up in the warnings.
func (h *DraftHandler) SetDates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IssueDate string `json:"issue_date"`
		DueDate   string `json:"due_date"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	issue, ok := optionalDate(w, r, req.IssueDate)
	if !ok {
		return
	}
	due, ok := optionalDate(w, r, req.DueDate)
	if !ok {
		return
	}
	h.update(w, r, func(b *builder.Builder) error {
		if !issue.IsZero() {
			if err := b.SetIssueDate(issue); err != nil {
				return err
			}
		}
		if !due.IsZero() {
			return b.SetDueDate(due)
		}
		return nil
	})
}

// optionalDate parses a YYYY-MM-DD value; empty input yields the zero time.
func optionalDate(w http.ResponseWriter, r *http.Request, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := builder.ParseDate(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_date", map[string]string{"value": raw})
		return time.Time{}, false
	}
	return t, true
}

type lineRequest struct {
	ItemID   *string        `json:"item_id"`
	Quantity *quantityInput `json:"quantity"`
}

// AddLine appends a line, optionally setting its item and quantity. The
// new line is dropped again when either value is rejected.
func (h *DraftHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	h.updateCreated(w, r, func(b *builder.Builder) error {
		i, err := b.AddLine()
		if err != nil {
			return err
		}
		if err := applyLine(b, i, req); err != nil {
			_ = b.RemoveLine(i)
			return err
		}
		return nil
	})
}

// UpdateLine changes the item and/or quantity of a line. Quantity accepts
// a JSON number or free text; invalid input follows the quantity policy.
func (h *DraftHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	index, ok := lineIndex(w, r)
	if !ok {
		return
	}
	var req lineRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	h.update(w, r, func(b *builder.Builder) error {
		lines := b.Lines()
		if index < 0 || index >= len(lines) {
			return &builder.IndexError{Index: index, Len: len(lines)}
		}
		prev := lines[index]
		if err := applyLine(b, index, req); err != nil {
			// the previous item comes from the draft's own catalog snapshot
			_ = b.SetLineItem(index, prev.CatalogItemID)
			return err
		}
		return nil
	})
}

func (h *DraftHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	index, ok := lineIndex(w, r)
	if !ok {
		return
	}
	h.update(w, r, func(b *builder.Builder) error { return b.RemoveLine(index) })
}

func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	inv, err := h.drafts.Save(r.PathValue("id"))
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *DraftHandler) update(w http.ResponseWriter, r *http.Request, fn func(*builder.Builder) error) {
	v, err := h.drafts.Update(r.PathValue("id"), fn)
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *DraftHandler) updateCreated(w http.ResponseWriter, r *http.Request, fn func(*builder.Builder) error) {
	v, err := h.drafts.Update(r.PathValue("id"), fn)
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func applyLine(b *builder.Builder, index int, req lineRequest) error {
	if req.ItemID != nil {
		if err := b.SetLineItem(index, *req.ItemID); err != nil {
			return err
		}
	}
	if req.Quantity != nil {
		return b.SetLineQuantityInput(index, req.Quantity.raw)
	}
	return nil
}

func lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_index", nil)
		return 0, false
	}
	return index, true
}

// quantityInput keeps the raw text of a quantity sent as a number or string.
type quantityInput struct {
	raw string
}

func (q *quantityInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		q.raw = s
		return nil
	}
	q.raw = string(b)
	return nil
}
