// Package directory resolves clients for the bill-to selection.
package directory

import (
	"sort"
	"strings"

	"github.com/diewo77/invoice-desk/internal/models"
)

// Static is an immutable in-memory snapshot of the client directory.
type Static struct {
	clients []models.Client
	byID    map[string]int
}

// NewStatic builds a snapshot ordered by Position (ties keep input order).
func NewStatic(clients []models.Client) *Static {
	sorted := make([]models.Client, len(clients))
	copy(sorted, clients)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	byID := make(map[string]int, len(sorted))
	for i, c := range sorted {
		byID[c.ID] = i
	}
	return &Static{clients: sorted, byID: byID}
}

// ResolveClient returns the client with the given id.
func (s *Static) ResolveClient(clientID string) (models.Client, bool) {
	i, ok := s.byID[clientID]
	if !ok {
		return models.Client{}, false
	}
	return s.clients[i], true
}

// IDs returns client ids in directory order.
func (s *Static) IDs() []string {
	ids := make([]string, len(s.clients))
	for i, c := range s.clients {
		ids[i] = c.ID
	}
	return ids
}

// Clients returns a copy of the directory in order.
func (s *Static) Clients() []models.Client {
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Len returns the number of clients.
func (s *Static) Len() int { return len(s.clients) }

// Search matches term against name, email and address, ignoring case.
func (s *Static) Search(term string) []models.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.Clients()
	}
	var out []models.Client
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			strings.Contains(strings.ToLower(c.Address), term) {
			out = append(out, c)
		}
	}
	return out
}
