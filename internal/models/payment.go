package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods offered when recording a payment.
const (
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodCard         = "Stripe (Card)"
	PaymentMethodCash         = "Cash"
	PaymentMethodPayPal       = "PayPal"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []string{PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCash, PaymentMethodPayPal}

// Payment is a payment received against an invoice.
type Payment struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	// MarkPaid settles the invoice even when Amount is below the invoice amount.
	MarkPaid bool `json:"mark_paid"`
}

// Settles reports whether the payment closes an invoice of the given amount.
func (p *Payment) Settles(invoiceAmount decimal.Decimal) bool {
	return p.MarkPaid || p.Amount.GreaterThanOrEqual(invoiceAmount)
}
