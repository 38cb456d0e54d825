package models

import (
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// EmailStatus tracks whether the invoice was mailed to the client.
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "SENT"
	EmailStatusUnsent EmailStatus = "UNSENT"
)

// Invoice is a finalized invoice record. It is a snapshot: ClientName is
// captured as text at save time, so later directory edits never change it.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	EmailStatus   EmailStatus     `json:"email_status"`
	Status        InvoiceStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
}

// IsDraft returns true if the invoice is in draft status.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// IsPaid returns true once the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOutstanding returns true for invoices sent out and awaiting payment.
func (i *Invoice) IsOutstanding() bool {
	return i.Status == InvoiceStatusPending || i.Status == InvoiceStatusOverdue
}

// LineEntry is one row of an invoice draft.
type LineEntry struct {
	CatalogItemID string `json:"item_id"`
	Quantity      int    `json:"quantity"`
}
