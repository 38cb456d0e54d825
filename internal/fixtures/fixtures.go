// Package fixtures holds the demo clients, catalog items and invoices the
// application seeds on a fresh database.
package fixtures

import (
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/shopspring/decimal"
)

func intPtr(n int) *int { return &n }

// Clients returns the demo client directory.
func Clients() []models.Client {
	return []models.Client{
		{ID: "1", Name: "Acme Cloud Services", Email: "billing@acme.cloud", Address: "123 Tech Way, San Francisco, CA", BalanceDue: decimal.RequireFromString("12450.00"), Position: 1},
		{ID: "2", Name: "Global Logistics Inc.", Email: "finance@globallogistics.com", Address: "888 Port Blvd, Miami, FL", BalanceDue: decimal.RequireFromString("3120.50"), Position: 2},
		{ID: "3", Name: "Design System Pro", Email: "hello@designsystem.pro", Address: "42 Creative St, Austin, TX", BalanceDue: decimal.RequireFromString("980.00"), Position: 3},
	}
}

// Items returns the demo catalog.
func Items() []models.Item {
	return []models.Item{
		{ID: "1", Name: `MacBook Pro 14"`, Description: "Apple M2 Pro Chip, 16GB RAM, 512GB SSD", Amount: decimal.RequireFromString("1999.00"), Inventory: intPtr(42), Unit: "Each", ImageURL: "https://picsum.photos/100/100?random=1", Position: 1},
		{ID: "2", Name: "Software Subscription", Description: "Enterprise Cloud License - Monthly Billing", Amount: decimal.RequireFromString("450.00"), Unit: "User / Month", ImageURL: "https://picsum.photos/100/100?random=2", Position: 2},
		{ID: "3", Name: "Ergonomic Office Chair", Description: "High-back mesh design with lumbar support", Amount: decimal.RequireFromString("299.99"), Inventory: intPtr(3), Unit: "Each", ImageURL: "https://picsum.photos/100/100?random=3", Position: 3},
	}
}

// Invoices returns the demo ledger, newest first.
func Invoices() []models.Invoice {
	return []models.Invoice{
		{ID: "1", InvoiceNumber: "INV-88219", ClientName: "Acme Cloud Services", IssueDate: "Oct 24, 2023", DueDate: "Nov 24, 2023", EmailStatus: models.EmailStatusSent, Status: models.InvoiceStatusPending, Amount: decimal.RequireFromString("12450.00")},
		{ID: "2", InvoiceNumber: "INV-88220", ClientName: "Global Logistics Inc.", IssueDate: "Oct 25, 2023", DueDate: "Nov 10, 2023", EmailStatus: models.EmailStatusUnsent, Status: models.InvoiceStatusPaid, Amount: decimal.RequireFromString("3120.50")},
		{ID: "3", InvoiceNumber: "INV-88221", ClientName: "Design System Pro", IssueDate: "Oct 26, 2023", DueDate: "Nov 26, 2023", EmailStatus: models.EmailStatusUnsent, Status: models.InvoiceStatusDraft, Amount: decimal.RequireFromString("980.00")},
		{ID: "4", InvoiceNumber: "INV-88222", ClientName: "Metrix Data Corp", IssueDate: "Oct 26, 2023", DueDate: "Nov 01, 2023", EmailStatus: models.EmailStatusSent, Status: models.InvoiceStatusOverdue, Amount: decimal.RequireFromString("22000.00")},
	}
}
