// Package ledger keeps the in-memory invoice list backing the invoices view:
// saved drafts are prepended, rows are searched, bulk actions apply to a
// selection and payments settle invoices.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/selection"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvoiceNotFound = errors.New("invoice_not_found")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrUnknownAction   = errors.New("unknown_action")
)

// Action is a bulk operation over selected invoices.
type Action string

const (
	ActionPay    Action = "pay"
	ActionSend   Action = "send"
	ActionDelete Action = "delete"
)

// ParseAction validates a bulk action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionPay, ActionSend, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Stats are the dashboard figures derived from the ledger.
type Stats struct {
	Count          int                          `json:"count"`
	ByStatus       map[models.InvoiceStatus]int `json:"by_status"`
	PendingCount   int                          `json:"pending_count"`
	Revenue        decimal.Decimal              `json:"revenue"`
	Outstanding    decimal.Decimal              `json:"outstanding"`
	OverdueAmount  decimal.Decimal              `json:"overdue_amount"`
	UnsentInvoices int                          `json:"unsent_invoices"`
}

type Ledger struct {
	mu       sync.RWMutex
	invoices []models.Invoice
	log      *zap.Logger
}

// New returns a ledger holding invoices in the given order (newest first).
func New(log *zap.Logger, invoices ...models.Invoice) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{log: log}
	l.invoices = append(l.invoices, invoices...)
	return l
}

// Prepend adds a freshly saved invoice at the top of the list.
func (l *Ledger) Prepend(inv models.Invoice) {
	l.mu.Lock()
	l.invoices = append([]models.Invoice{inv}, l.invoices...)
	l.mu.Unlock()
	l.log.Info("invoice added",
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("amount", inv.Amount.StringFixed(2)))
}

// List returns a copy of every invoice, newest first.
func (l *Ledger) List() []models.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Invoice, len(l.invoices))
	copy(out, l.invoices)
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.invoices)
}

func (l *Ledger) Get(id string) (models.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.invoices[i], nil
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

// HasNumber reports whether an invoice number is already taken.
func (l *Ledger) HasNumber(number string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, inv := range l.invoices {
		if inv.InvoiceNumber == number {
			return true
		}
	}
	return false
}

// Search matches term against invoice number and client name, ignoring
// case. An empty term returns everything.
func (l *Ledger) Search(term string) []models.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return l.List()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Invoice
	for _, inv := range l.invoices {
		if strings.Contains(strings.ToLower(inv.InvoiceNumber), term) ||
			strings.Contains(strings.ToLower(inv.ClientName), term) {
			out = append(out, inv)
		}
	}
	return out
}

// IDs returns the ids of invoices, in ledger order.
func IDs(invoices []models.Invoice) []string {
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	return ids
}

func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := Stats{
		Count:         len(l.invoices),
		ByStatus:      make(map[models.InvoiceStatus]int),
		Revenue:       decimal.Zero,
		Outstanding:   decimal.Zero,
		OverdueAmount: decimal.Zero,
	}
	for _, inv := range l.invoices {
		s.ByStatus[inv.Status]++
		switch inv.Status {
		case models.InvoiceStatusPaid:
			s.Revenue = s.Revenue.Add(inv.Amount)
		case models.InvoiceStatusPending:
			s.PendingCount++
			s.Outstanding = s.Outstanding.Add(inv.Amount)
		case models.InvoiceStatusOverdue:
			s.Outstanding = s.Outstanding.Add(inv.Amount)
			s.OverdueAmount = s.OverdueAmount.Add(inv.Amount)
		}
		if inv.EmailStatus == models.EmailStatusUnsent {
			s.UnsentInvoices++
		}
	}
	return s
}

// Apply runs a bulk action over the selected invoices and returns how many
// were affected. Selected ids that are not in the ledger are skipped, and
// affected ids are removed from the selection.
func (l *Ledger) Apply(action Action, sel *selection.Set[string]) (int, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return 0, err
	}
	l.mu.Lock()
	affected := 0
	kept := l.invoices[:0:0]
	for _, inv := range l.invoices {
		if !sel.Has(inv.ID) {
			kept = append(kept, inv)
			continue
		}
		affected++
		sel.Remove(inv.ID)
		switch action {
		case ActionPay:
			inv.Status = models.InvoiceStatusPaid
		case ActionSend:
			inv.EmailStatus = models.EmailStatusSent
		case ActionDelete:
			continue
		}
		kept = append(kept, inv)
	}
	l.invoices = kept
	l.mu.Unlock()

	l.log.Info("bulk action applied", zap.String("action", string(action)), zap.Int("affected", affected))
	return affected, nil
}

// RecordPayment applies a payment to an invoice. The invoice becomes PAID
// when the payment covers its amount or MarkPaid is set.
func (l *Ledger) RecordPayment(id string, p models.Payment) (models.Invoice, error) {
	if !p.Amount.IsPositive() {
		return models.Invoice{}, ErrInvalidAmount
	}
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return models.Invoice{}, ErrInvoiceNotFound
	}
	if p.Settles(l.invoices[i].Amount) {
		l.invoices[i].Status = models.InvoiceStatusPaid
	}
	inv := l.invoices[i]
	l.mu.Unlock()

	l.log.Info("payment recorded",
		zap.String("invoice_id", id),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.String("method", p.Method),
		zap.String("status", string(inv.Status)))
	return inv, nil
}

func (l *Ledger) indexOf(id string) int {
	for i, inv := range l.invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}
