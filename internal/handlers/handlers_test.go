package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/catalog"
	"github.com/diewo77/invoice-desk/internal/directory"
	"github.com/diewo77/invoice-desk/internal/fixtures"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/middleware"
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
)

type testEnv struct {
	handler http.Handler
	ledger  *ledger.Ledger
	drafts  *services.DraftService
}

func newTestEnv(t *testing.T, settings services.DraftSettings) *testEnv {
	t.Helper()
	log := zap.NewNop()
	l := ledger.New(log, fixtures.Invoices()...)
	snaps := services.StaticSnapshots(catalog.NewStatic(fixtures.Items()), directory.NewStatic(fixtures.Clients()))
	drafts := services.NewDraftService(snaps, l, settings, log)

	mux := http.NewServeMux()
	NewInvoiceHandler(l, log).Register(mux)
	NewDraftHandler(drafts, log).Register(mux)
	NewDirectoryHandler(snaps, log).Register(mux)
	NewDashboardHandler(l, snaps, log).Register(mux)
	return &testEnv{handler: middleware.Prefs(mux), ledger: l, drafts: drafts}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d got %d body=%s", want, w.Code, w.Body.String())
	}
}

func TestInvoiceListAndSearch(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})

	w := env.do(t, http.MethodGet, "/invoices", "")
	expectStatus(t, w, http.StatusOK)
	all := decode[struct {
		Items []models.Invoice `json:"items"`
		Total int              `json:"total"`
	}](t, w)
	if all.Total != 4 || all.Items[0].InvoiceNumber != "INV-88219" {
		t.Fatalf("unexpected list %+v", all)
	}

	w = env.do(t, http.MethodGet, "/invoices?q=metrix", "")
	res := decode[struct {
		Items []models.Invoice `json:"items"`
	}](t, w)
	if len(res.Items) != 1 || res.Items[0].ID != "4" {
		t.Fatalf("search = %+v", res.Items)
	}

	w = env.do(t, http.MethodGet, "/invoices?q=zzz", "")
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("empty search should return an empty array: %s", w.Body.String())
	}

	expectStatus(t, env.do(t, http.MethodGet, "/invoices/2", ""), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/invoices/99", ""), http.StatusNotFound)
}

func TestInvoiceBulk(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		affected int
	}{
		{"pay ids", `{"action":"pay","ids":["1","4"]}`, http.StatusOK, 2},
		{"send all matching query", `{"action":"send","all":true,"query":"inv-8822"}`, http.StatusOK, 3},
		{"delete everything", `{"action":"delete","all":true}`, http.StatusOK, 4},
		{"unknown action", `{"action":"archive","ids":["1"]}`, http.StatusBadRequest, 0},
		{"empty selection", `{"action":"pay"}`, http.StatusBadRequest, 0},
		{"bad json", `{"action":`, http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, services.DraftSettings{})
			w := env.do(t, http.MethodPost, "/invoices/bulk", tt.body)
			expectStatus(t, w, tt.status)
			if tt.status != http.StatusOK {
				return
			}
			got := decode[struct {
				Affected int `json:"affected"`
			}](t, w)
			if got.Affected != tt.affected {
				t.Fatalf("affected = %d, want %d", got.Affected, tt.affected)
			}
		})
	}
}

func TestRecordPayment(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})

	w := env.do(t, http.MethodPost, "/invoices/1/payments", `{"amount":"12450.00","method":"Cash","date":"2023-11-01"}`)
	expectStatus(t, w, http.StatusOK)
	if inv := decode[models.Invoice](t, w); inv.Status != models.InvoiceStatusPaid {
		t.Fatalf("status = %s", inv.Status)
	}

	w = env.do(t, http.MethodPost, "/invoices/4/payments", `{"amount":0,"method":"Cheque"}`)
	expectStatus(t, w, http.StatusUnprocessableEntity)
	errResp := decode[struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}](t, w)
	if errResp.Details["amount"] != "must_be_positive" || errResp.Details["method"] != "invalid_choice" {
		t.Fatalf("details = %v", errResp.Details)
	}

	expectStatus(t, env.do(t, http.MethodPost, "/invoices/4/payments", `{"amount":10,"date":"01/11/2023"}`), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodPost, "/invoices/nope/payments", `{"amount":10}`), http.StatusNotFound)
}

func TestClientsAndItems(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})

	w := env.do(t, http.MethodGet, "/clients?q=miami", "")
	expectStatus(t, w, http.StatusOK)
	clients := decode[struct {
		Items []models.Client `json:"items"`
	}](t, w)
	if len(clients.Items) != 1 || clients.Items[0].Name != "Global Logistics Inc." {
		t.Fatalf("clients = %+v", clients.Items)
	}

	req := httptest.NewRequest(http.MethodGet, "/items?q=subscription", nil)
	req.Header.Set("Accept-Language", "fr")
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	items := decode[struct {
		Items []struct {
			ID             string `json:"id"`
			InventoryLabel string `json:"inventory_label"`
		} `json:"items"`
	}](t, w)
	if len(items.Items) != 1 || items.Items[0].InventoryLabel != "Illimité" {
		t.Fatalf("items = %+v", items.Items)
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})
	w := env.do(t, http.MethodGet, "/dashboard", "")
	expectStatus(t, w, http.StatusOK)
	got := decode[struct {
		Stats struct {
			Count   int    `json:"count"`
			Revenue string `json:"revenue"`
		} `json:"stats"`
		ActiveClients int `json:"active_clients"`
	}](t, w)
	if got.Stats.Count != 4 || got.Stats.Revenue != "3120.5" || got.ActiveClients != 3 {
		t.Fatalf("dashboard = %+v", got)
	}
}

func TestDraftFlow(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})

	w := env.do(t, http.MethodPost, "/drafts", "")
	expectStatus(t, w, http.StatusCreated)
	draft := decode[services.DraftView](t, w)
	base := "/drafts/" + draft.ID

	expectStatus(t, env.do(t, http.MethodPut, base+"/client", `{"client_id":"2"}`), http.StatusOK)

	// seeded line is item 1 (1999.00); make it item 3 × 2, then add item 2 × 1
	expectStatus(t, env.do(t, http.MethodPatch, base+"/lines/0", `{"item_id":"3","quantity":2}`), http.StatusOK)
	w = env.do(t, http.MethodPost, base+"/lines", `{"item_id":"2","quantity":"1"}`)
	expectStatus(t, w, http.StatusCreated)
	draft = decode[services.DraftView](t, w)
	if len(draft.Lines) != 2 || draft.Totals.Subtotal.StringFixed(2) != "1049.98" {
		t.Fatalf("draft = %+v", draft)
	}

	w = env.do(t, http.MethodPut, base+"/dates", `{"issue_date":"2023-11-10","due_date":"2023-11-01"}`)
	expectStatus(t, w, http.StatusOK)
	draft = decode[services.DraftView](t, w)
	if len(draft.Warnings) != 1 || draft.Warnings[0] != builder.WarningDueBeforeIssue {
		t.Fatalf("warnings = %v", draft.Warnings)
	}

	w = env.do(t, http.MethodPost, base+"/save", "")
	expectStatus(t, w, http.StatusCreated)
	inv := decode[models.Invoice](t, w)
	// 1049.98 + 10% = 1154.978
	if inv.Amount.StringFixed(2) != "1154.98" || inv.ClientName != "Global Logistics Inc." || inv.IssueDate != "Nov 10, 2023" {
		t.Fatalf("invoice = %+v", inv)
	}
	if inv.Status != models.InvoiceStatusDraft || inv.EmailStatus != models.EmailStatusUnsent {
		t.Fatalf("invoice statuses = %s / %s", inv.Status, inv.EmailStatus)
	}
	if first := env.ledger.List()[0]; first.ID != inv.ID {
		t.Fatalf("invoice not prepended")
	}
	expectStatus(t, env.do(t, http.MethodGet, base, ""), http.StatusNotFound)
}

func TestDraftErrors(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{QuantityPolicy: builder.QuantityReject})
	w := env.do(t, http.MethodPost, "/drafts", "")
	draft := decode[services.DraftView](t, w)
	base := "/drafts/" + draft.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown client", http.MethodPut, base + "/client", `{"client_id":"42"}`, http.StatusUnprocessableEntity, "invalid_reference"},
		{"unknown item", http.MethodPatch, base + "/lines/0", `{"item_id":"42"}`, http.StatusUnprocessableEntity, "invalid_reference"},
		{"line out of range", http.MethodDelete, base + "/lines/3", "", http.StatusNotFound, "index_out_of_range"},
		{"non numeric index", http.MethodDelete, base + "/lines/x", "", http.StatusBadRequest, "invalid_index"},
		{"rejected quantity", http.MethodPatch, base + "/lines/0", `{"item_id":"2","quantity":"abc"}`, http.StatusUnprocessableEntity, "invalid_quantity"},
		{"bad date", http.MethodPut, base + "/dates", `{"issue_date":"tomorrow"}`, http.StatusBadRequest, "invalid_date"},
		{"unknown field", http.MethodPut, base + "/client", `{"client":"1"}`, http.StatusBadRequest, "invalid_json"},
		{"unknown draft", http.MethodGet, "/drafts/nope", "", http.StatusNotFound, "draft_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, w, tt.status)
			if got := decode[httpx.ErrorResponse](t, w); got.Error != tt.code || got.Message == "" {
				t.Fatalf("error = %+v, want code %s", got, tt.code)
			}
		})
	}

	// the rejected quantity must not leave the item swapped
	current, _ := env.drafts.Get(draft.ID)
	if current.Lines[0].ItemID != "1" || current.Lines[0].Quantity != 1 {
		t.Fatalf("line changed after rejected update: %+v", current.Lines[0])
	}
}

func TestDraftClampsQuantityAndCancels(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{})
	draft := decode[services.DraftView](t, env.do(t, http.MethodPost, "/drafts", ""))
	base := "/drafts/" + draft.ID

	w := env.do(t, http.MethodPatch, base+"/lines/0", `{"quantity":"abc"}`)
	expectStatus(t, w, http.StatusOK)
	draft = decode[services.DraftView](t, w)
	if draft.Lines[0].Quantity != 0 || !draft.Totals.Total.IsZero() {
		t.Fatalf("expected clamped quantity, got %+v", draft.Lines[0])
	}

	expectStatus(t, env.do(t, http.MethodDelete, base+"/lines/0", ""), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodDelete, base, ""), http.StatusNoContent)
	expectStatus(t, env.do(t, http.MethodDelete, base, ""), http.StatusNotFound)
	if env.ledger.Len() != 4 {
		t.Fatalf("cancel must not add an invoice")
	}
}

func TestStrictSaveOverHTTP(t *testing.T) {
	env := newTestEnv(t, services.DraftSettings{StrictSave: true})
	draft := decode[services.DraftView](t, env.do(t, http.MethodPost, "/drafts", ""))
	base := "/drafts/" + draft.ID
	env.do(t, http.MethodDelete, base+"/lines/0", "")

	w := env.do(t, http.MethodPost, base+"/save", "")
	expectStatus(t, w, http.StatusUnprocessableEntity)
	got := decode[struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}](t, w)
	if got.Error != "validation_failed" || got.Details["lines"] != "required" {
		t.Fatalf("error = %+v", got)
	}
}
