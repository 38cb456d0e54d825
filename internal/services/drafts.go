package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diewo77/invoice-desk/internal/builder"
	"github.com/diewo77/invoice-desk/internal/catalog"
	"github.com/diewo77/invoice-desk/internal/ledger"
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/totals"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrDraftNotFound = errors.New("draft_not_found")

// numberAttempts bounds the retries for an invoice number not yet in the ledger.
const numberAttempts = 5

// DraftSettings are the builder policies applied to every new draft.
type DraftSettings struct {
	StrictSave     bool
	QuantityPolicy builder.QuantityPolicy
	Lang           string
}

// LineView is one draft line with its resolved item and line total.
type LineView struct {
	Index     int             `json:"index"`
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// DraftView is the JSON representation of an open draft.
type DraftView struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"client_id"`
	Client    *models.Client `json:"client,omitempty"`
	IssueDate string         `json:"issue_date"`
	DueDate   string         `json:"due_date"`
	Lines     []LineView     `json:"lines"`
	Totals    totals.Totals  `json:"totals"`
	Warnings  []string       `json:"warnings,omitempty"`
}

type session struct {
	builder *builder.Builder
	catalog *catalog.Static
}

// DraftService owns the open invoice drafts. Builders are not safe for
// concurrent use, so every access goes through the service lock.
type DraftService struct {
	mu        sync.Mutex
	drafts    map[string]*session
	snapshots *Snapshots
	ledger    *ledger.Ledger
	settings  DraftSettings
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewDraftService(snapshots *Snapshots, l *ledger.Ledger, settings DraftSettings, log *zap.Logger) *DraftService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DraftService{
		drafts:    make(map[string]*session),
		snapshots: snapshots,
		ledger:    l,
		settings:  settings,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Open starts a new draft against the current catalog and directory.
func (s *DraftService) Open(ctx context.Context) (DraftView, error) {
	cat, err := s.snapshots.Catalog(ctx)
	if err != nil {
		return DraftView{}, fmt.Errorf("load catalog: %w", err)
	}
	dir, err := s.snapshots.Directory(ctx)
	if err != nil {
		return DraftView{}, fmt.Errorf("load directory: %w", err)
	}

	b := builder.New(cat, dir,
		builder.WithClock(s.now),
		builder.WithInvoiceNumbers(s.uniqueNumber),
		builder.WithLanguage(s.settings.Lang),
		builder.WithQuantityPolicy(s.settings.QuantityPolicy),
		builder.WithStrictSave(s.settings.StrictSave),
		builder.OnSave(s.ledger.Prepend),
	)
	id := s.newID()

	s.mu.Lock()
	s.drafts[id] = &session{builder: b, catalog: cat}
	s.mu.Unlock()

	s.log.Info("draft opened", zap.String("draft_id", id))
	return s.Get(id)
}

func (s *DraftService) Get(id string) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.drafts[id]
	if !ok {
		return DraftView{}, ErrDraftNotFound
	}
	return view(id, sess), nil
}

// Update runs fn against the draft's builder and returns the resulting view.
// A failing fn leaves the draft as the builder left it (builders reject
// invalid mutations without changing state).
func (s *DraftService) Update(id string, fn func(b *builder.Builder) error) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.drafts[id]
	if !ok {
		return DraftView{}, ErrDraftNotFound
	}
	if err := fn(sess.builder); err != nil {
		return DraftView{}, err
	}
	return view(id, sess), nil
}

// Save finalizes the draft, hands the invoice to the ledger and forgets the
// draft. A failed strict save keeps the draft open.
func (s *DraftService) Save(id string) (models.Invoice, error) {
	s.mu.Lock()
	sess, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return models.Invoice{}, ErrDraftNotFound
	}
	inv, err := sess.builder.Save()
	if err == nil || sess.builder.Closed() {
		delete(s.drafts, id)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("draft save rejected", zap.String("draft_id", id), zap.Error(err))
		return models.Invoice{}, err
	}
	s.log.Info("draft saved",
		zap.String("draft_id", id),
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber))
	return inv, nil
}

// Cancel discards the draft. Unknown ids are reported, so a second cancel
// returns ErrDraftNotFound.
func (s *DraftService) Cancel(id string) error {
	s.mu.Lock()
	sess, ok := s.drafts[id]
	if ok {
		sess.builder.Cancel()
		delete(s.drafts, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrDraftNotFound
	}
	s.log.Info("draft cancelled", zap.String("draft_id", id))
	return nil
}

// Len returns the number of open drafts.
func (s *DraftService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *DraftService) uniqueNumber() string {
	n := builder.RandomInvoiceNumber()
	for i := 1; i < numberAttempts && s.ledger.HasNumber(n); i++ {
		n = builder.RandomInvoiceNumber()
	}
	return n
}

func view(id string, sess *session) DraftView {
	b := sess.builder
	d := b.Draft()
	v := DraftView{
		ID:        id,
		ClientID:  d.ClientID,
		IssueDate: d.IssueDate.Format(builder.DateLayout),
		DueDate:   d.DueDate.Format(builder.DateLayout),
		Lines:     make([]LineView, len(d.Lines)),
		Totals:    b.ComputeTotals().Rounded(),
		Warnings:  b.Warnings(),
	}
	if c, ok := b.Client(); ok {
		v.Client = &c
	}
	for i, l := range d.Lines {
		lv := LineView{Index: i, ItemID: l.CatalogItemID, Quantity: l.Quantity, Total: totals.Cents(b.LineTotal(i))}
		if it, ok := sess.catalog.Item(l.CatalogItemID); ok {
			lv.Name = it.Name
			lv.Unit = it.Unit
			lv.UnitPrice = it.Amount
		}
		v.Lines[i] = lv
	}
	return v
}
