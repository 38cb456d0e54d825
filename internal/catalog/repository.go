package catalog

import (
	"context"
	"fmt"

	"github.com/diewo77/invoice-desk/internal/models"
	"gorm.io/gorm"
)

// Repository reads catalog items from the database. The catalog is
// read-only from the application's point of view.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every item ordered by position.
func (r *Repository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("position, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return items, nil
}

// Snapshot loads the catalog into an in-memory lookup.
func (r *Repository) Snapshot(ctx context.Context) (*Static, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewStatic(items), nil
}
