package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/diewo77/invoice-desk/httpx"
	"github.com/diewo77/invoice-desk/i18n"
	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/middleware"
	"github.com/diewo77/invoice-desk/internal/services"
	"go.uber.org/zap"
)

// writeError sends a JSON error with the message translated to the request language.
func writeError(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	httpx.JSONErrorMessage(w, status, code, i18n.T(middleware.LangFrom(r), code), details)
}

// decodeBody decodes an optional JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if err := httpx.DecodeJSON(r, dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// mapError translates domain errors to HTTP responses. Unknown errors are
// logged and reported as internal errors.
func mapError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var (
		refErr   *builder.ReferenceError
		idxErr   *builder.IndexError
		validErr *builder.ValidationError
	)
	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		writeError(w, r, http.StatusNotFound, "draft_not_found", nil)
	case errors.Is(err, builder.ErrDraftClosed):
		writeError(w, r, http.StatusConflict, "draft_closed", nil)
	case errors.As(err, &refErr):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_reference", map[string]string{"kind": refErr.Kind, "id": refErr.ID})
	case errors.As(err, &idxErr):
		writeError(w, r, http.StatusNotFound, "index_out_of_range", map[string]int{"index": idxErr.Index, "len": idxErr.Len})
	case errors.As(err, &validErr):
		writeError(w, r, http.StatusUnprocessableEntity, "validation_failed", validErr.Violations)
	case errors.Is(err, builder.ErrInvalidQuantity):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_quantity", nil)
	case errors.Is(err, ledger.ErrInvoiceNotFound):
		writeError(w, r, http.StatusNotFound, "invoice_not_found", nil)
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_amount", nil)
	case errors.Is(err, ledger.ErrUnknownAction):
		writeError(w, r, http.StatusBadRequest, "unknown_action", nil)
	default:
		log.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal_error", nil)
	}
}
