// Package builder implements the "new invoice" draft: a bill-to client, an
// ordered list of catalog lines and issue/due dates, turned into a finalized
// models.Invoice on Save.
//
// A Builder is not safe for concurrent use.
package builder

import (
	"fmt"
	"time"

	"github.com/diewo77/invoice-desk/i18n"
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/diewo77/invoice-desk/internal/totals"
	"github.com/diewo77/invoice-desk/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDueDays is the gap between the default issue and due dates.
const DefaultDueDays = 30

// DateLayout is the wire format of draft dates.
const DateLayout = "2006-01-02"

// WarningDueBeforeIssue flags a due date earlier than the issue date. It is
// informational only; the dates are still accepted.
const WarningDueBeforeIssue = "due_date_before_issue_date"

// Catalog is the read-only item lookup a draft prices its lines against.
type Catalog interface {
	ResolvePrice(itemID string) (decimal.Decimal, bool)
	IDs() []string
}

// Directory is the read-only client lookup used for the bill-to selection.
type Directory interface {
	ResolveClient(clientID string) (models.Client, bool)
	IDs() []string
}

type options struct {
	now       func() time.Time
	newID     func() string
	newNumber func() string
	lang      string
	quantity  QuantityPolicy
	strict    bool
	onSave    func(models.Invoice)
}

type Option func(*options)

// WithClock overrides the clock used for the default dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs overrides the invoice id generator (uuid by default).
func WithIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithInvoiceNumbers overrides the invoice number generator.
func WithInvoiceNumbers(newNumber func() string) Option {
	return func(o *options) { o.newNumber = newNumber }
}

// WithLanguage sets the language used for display dates and fallbacks.
func WithLanguage(lang string) Option {
	return func(o *options) { o.lang = lang }
}

func WithQuantityPolicy(p QuantityPolicy) Option {
	return func(o *options) { o.quantity = p }
}

// WithStrictSave makes Save fail with a *ValidationError when the draft has
// no lines or no resolvable client.
func WithStrictSave(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// OnSave registers the completion callback, fired once per successful Save.
func OnSave(fn func(models.Invoice)) Option {
	return func(o *options) { o.onSave = fn }
}

// Draft is a copy of the builder state.
type Draft struct {
	ClientID  string
	IssueDate time.Time
	DueDate   time.Time
	Lines     []models.LineEntry
	Closed    bool
}

type Builder struct {
	catalog   Catalog
	directory Directory
	opts      options

	clientID  string
	issueDate time.Time
	dueDate   time.Time
	lines     []models.LineEntry
	closed    bool
}

// New opens a draft seeded with the first directory client, one line for
// the first catalog item, today's issue date and a due date DefaultDueDays
// later. An empty catalog seeds no line; an empty directory leaves the
// client unset.
func New(catalog Catalog, directory Directory, opts ...Option) *Builder {
	o := options{
		now:       time.Now,
		newID:     uuid.NewString,
		newNumber: RandomInvoiceNumber,
		lang:      i18n.DefaultLang,
		quantity:  QuantityClamp,
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Builder{catalog: catalog, directory: directory, opts: o}
	if ids := directory.IDs(); len(ids) > 0 {
		b.clientID = ids[0]
	}
	if first, ok := b.firstItem(); ok {
		b.lines = []models.LineEntry{{CatalogItemID: first, Quantity: 1}}
	}
	b.issueDate = Civil(o.now())
	b.dueDate = b.issueDate.AddDate(0, 0, DefaultDueDays)
	return b
}

func (b *Builder) firstItem() (string, bool) {
	ids := b.catalog.IDs()
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Civil truncates t to a calendar date at midnight UTC.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Civil(t), nil
}

// SelectClient replaces the bill-to client.
func (b *Builder) SelectClient(clientID string) error {
	if b.closed {
		return ErrDraftClosed
	}
	if _, ok := b.directory.ResolveClient(clientID); !ok {
		return &ReferenceError{Kind: "client", ID: clientID}
	}
	b.clientID = clientID
	return nil
}

// AddLine appends a line for the first catalog item with quantity 1 and
// returns its index.
func (b *Builder) AddLine() (int, error) {
	if b.closed {
		return 0, ErrDraftClosed
	}
	first, ok := b.firstItem()
	if !ok {
		return 0, &ReferenceError{Kind: "item"}
	}
	b.lines = append(b.lines, models.LineEntry{CatalogItemID: first, Quantity: 1})
	return len(b.lines) - 1, nil
}

// RemoveLine deletes the line at index. Removing the last line is allowed.
func (b *Builder) RemoveLine(index int) error {
	if err := b.checkLine(index); err != nil {
		return err
	}
	b.lines = append(b.lines[:index:index], b.lines[index+1:]...)
	return nil
}

// SetLineItem swaps the catalog item of a line, keeping its quantity.
func (b *Builder) SetLineItem(index int, itemID string) error {
	if err := b.checkLine(index); err != nil {
		return err
	}
	if _, ok := b.catalog.ResolvePrice(itemID); !ok {
		return &ReferenceError{Kind: "item", ID: itemID}
	}
	b.lines[index].CatalogItemID = itemID
	return nil
}

// SetLineQuantity sets the quantity of a line. Non-positive values are
// stored as 0 under QuantityClamp and rejected under QuantityReject.
func (b *Builder) SetLineQuantity(index, quantity int) error {
	if err := b.checkLine(index); err != nil {
		return err
	}
	if quantity <= 0 {
		if b.opts.quantity == QuantityReject {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}
		quantity = 0
	}
	b.lines[index].Quantity = quantity
	return nil
}

// SetLineQuantityInput applies free-text quantity input through
// ParseQuantity and the quantity policy.
func (b *Builder) SetLineQuantityInput(index int, raw string) error {
	if err := b.checkLine(index); err != nil {
		return err
	}
	n, err := ParseQuantity(raw)
	if err != nil {
		if b.opts.quantity == QuantityReject {
			return err
		}
		n = 0
	}
	b.lines[index].Quantity = n
	return nil
}

func (b *Builder) SetIssueDate(d time.Time) error {
	if b.closed {
		return ErrDraftClosed
	}
	b.issueDate = Civil(d)
	return nil
}

func (b *Builder) SetDueDate(d time.Time) error {
	if b.closed {
		return ErrDraftClosed
	}
	b.dueDate = Civil(d)
	return nil
}

func (b *Builder) checkLine(index int) error {
	if b.closed {
		return ErrDraftClosed
	}
	if index < 0 || index >= len(b.lines) {
		return &IndexError{Index: index, Len: len(b.lines)}
	}
	return nil
}

// ComputeTotals derives totals from the current lines. Lines referencing an
// item the catalog no longer knows contribute zero.
func (b *Builder) ComputeTotals() totals.Totals {
	return totals.Compute(b.lines, b.catalog)
}

// LineTotal returns price × quantity of one line for display.
func (b *Builder) LineTotal(index int) decimal.Decimal {
	if index < 0 || index >= len(b.lines) {
		return decimal.Zero
	}
	return totals.Line(b.lines[index], b.catalog)
}

// Lines returns a copy of the current lines.
func (b *Builder) Lines() []models.LineEntry {
	out := make([]models.LineEntry, len(b.lines))
	copy(out, b.lines)
	return out
}

// Draft returns a copy of the current state.
func (b *Builder) Draft() Draft {
	return Draft{
		ClientID:  b.clientID,
		IssueDate: b.issueDate,
		DueDate:   b.dueDate,
		Lines:     b.Lines(),
		Closed:    b.closed,
	}
}

// Client resolves the selected client.
func (b *Builder) Client() (models.Client, bool) {
	if b.clientID == "" {
		return models.Client{}, false
	}
	return b.directory.ResolveClient(b.clientID)
}

// Warnings lists non-blocking remarks about the draft.
func (b *Builder) Warnings() []string {
	var out []string
	if b.dueDate.Before(b.issueDate) {
		out = append(out, WarningDueBeforeIssue)
	}
	return out
}

func (b *Builder) Closed() bool { return b.closed }

// Save finalizes the draft. An unresolvable client is recorded as
// "Unknown Client" unless strict save is on. The draft is closed afterwards
// and the OnSave callback receives the invoice.
func (b *Builder) Save() (models.Invoice, error) {
	if b.closed {
		return models.Invoice{}, ErrDraftClosed
	}
	client, found := b.Client()
	if b.opts.strict {
		v := make(validation.Violations)
		validation.Required("client_id", b.clientID, v)
		if b.clientID != "" && !found {
			v["client_id"] = "invalid_reference"
		}
		validation.MinCount("lines", len(b.lines), 1, v)
		if !v.Empty() {
			return models.Invoice{}, &ValidationError{Violations: v}
		}
	}

	name := client.Name
	if !found || name == "" {
		name = i18n.T(b.opts.lang, "unknown_client")
	}
	t := b.ComputeTotals()
	inv := models.Invoice{
		ID:            b.opts.newID(),
		InvoiceNumber: b.opts.newNumber(),
		ClientName:    name,
		IssueDate:     i18n.FormatDate(b.opts.lang, b.issueDate),
		DueDate:       i18n.FormatDate(b.opts.lang, b.dueDate),
		EmailStatus:   models.EmailStatusUnsent,
		Status:        models.InvoiceStatusDraft,
		Amount:        totals.Cents(t.Total),
	}
	b.closed = true
	if b.opts.onSave != nil {
		b.opts.onSave(inv)
	}
	return inv, nil
}

// Cancel discards the draft. Calling it again is a no-op.
func (b *Builder) Cancel() {
	b.closed = true
	b.clientID = ""
	b.lines = nil
}
