package directory

import (
	"context"
	"fmt"

	"github.com/diewo77/invoice-desk/internal/models"
	"gorm.io/gorm"
)

// Repository reads clients from the database.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every client ordered by position.
func (r *Repository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("position, id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Snapshot loads the directory into an in-memory lookup.
func (r *Repository) Snapshot(ctx context.Context) (*Static, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewStatic(clients), nil
}
