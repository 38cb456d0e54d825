package services

import (
	"context"
	"time"

	"github.com/diewo77/invoice-desk/internal/cache"
	"github.com/diewo77/invoice-desk/internal/catalog"
	"github.com/diewo77/invoice-desk/internal/directory"
)

const snapshotKey = "all"

// Snapshots serves cached catalog and directory snapshots so opening a
// draft or listing rows does not query the database every time.
type Snapshots struct {
	catalog   *cache.Resolver[string, *catalog.Static]
	directory *cache.Resolver[string, *directory.Static]
}

func NewSnapshots(items *catalog.Repository, clients *directory.Repository, ttl time.Duration) *Snapshots {
	return &Snapshots{
		catalog: cache.NewResolver(func(ctx context.Context, _ string) (*catalog.Static, error) {
			return items.Snapshot(ctx)
		}, ttl),
		directory: cache.NewResolver(func(ctx context.Context, _ string) (*directory.Static, error) {
			return clients.Snapshot(ctx)
		}, ttl),
	}
}

// StaticSnapshots serves fixed snapshots, without a database.
func StaticSnapshots(items *catalog.Static, clients *directory.Static) *Snapshots {
	return &Snapshots{
		catalog: cache.NewResolver(func(context.Context, string) (*catalog.Static, error) {
			return items, nil
		}, 0),
		directory: cache.NewResolver(func(context.Context, string) (*directory.Static, error) {
			return clients, nil
		}, 0),
	}
}

func (s *Snapshots) Catalog(ctx context.Context) (*catalog.Static, error) {
	return s.catalog.Resolve(ctx, snapshotKey)
}

func (s *Snapshots) Directory(ctx context.Context) (*directory.Static, error) {
	return s.directory.Resolve(ctx, snapshotKey)
}

// Invalidate forces the next call to reload both snapshots.
func (s *Snapshots) Invalidate() {
	s.catalog.InvalidateAll()
	s.directory.InvalidateAll()
}
