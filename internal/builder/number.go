package builder

import (
	"fmt"
	"math/rand/v2"
)

// RandomInvoiceNumber returns "INV-" followed by a five digit suffix.
// Collisions are possible; callers that care check against their ledger.
func RandomInvoiceNumber() string {
	return fmt.Sprintf("INV-%d", 10000+rand.IntN(90000))
}
