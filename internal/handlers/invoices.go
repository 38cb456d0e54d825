package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/selection"
	"github.com/diewo77/invoice-desk/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	ledger *ledger.Ledger
	log    *zap.Logger
	now    func() time.Time
}

func NewInvoiceHandler(l *ledger.Ledger, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{ledger: l, log: log, now: time.Now}
}

func (h *InvoiceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /invoices", h.List)
	mux.HandleFunc("GET /invoices/{id}", h.Get)
	mux.HandleFunc("POST /invoices/bulk", h.Bulk)
	mux.HandleFunc("POST /invoices/{id}/payments", h.RecordPayment)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	invs := h.ledger.Search(q)
	if invs == nil {
		invs = []models.Invoice{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs), "query": q})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.ledger.Get(r.PathValue("id"))
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
	// All selects every invoice matching Query, like the header checkbox.
	All   bool   `json:"all"`
	Query string `json:"query"`
}

func (h *InvoiceHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	action, err := ledger.ParseAction(req.Action)
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	sel := selection.New(req.IDs...)
	if req.All {
		sel.SetAll(ledger.IDs(h.ledger.Search(req.Query)), true)
	}
	if sel.Len() == 0 {
		writeError(w, r, http.StatusBadRequest, "empty_selection", nil)
		return
	}
	affected, err := h.ledger.Apply(action, sel)
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"action": action, "affected": affected})
}

type paymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	MarkPaid  bool            `json:"mark_paid"`
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Method == "" {
		req.Method = models.PaymentMethodBankTransfer
	}
	date := builder.Civil(h.now())
	if req.Date != "" {
		d, err := builder.ParseDate(req.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		date = d
	}

	v := make(validation.Violations)
	validation.PositiveDecimal("amount", req.Amount, v)
	validation.OneOf("method", req.Method, models.PaymentMethods, v)
	if !v.Empty() {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	inv, err := h.ledger.RecordPayment(r.PathValue("id"), models.Payment{
		Amount:    req.Amount,
		Date:      date,
		Method:    req.Method,
		Reference: req.Reference,
		MarkPaid:  req.MarkPaid,
	})
	if err != nil {
		mapError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
