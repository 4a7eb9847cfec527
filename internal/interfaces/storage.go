package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/domus/internal/models"
)

// ErrNotFound is returned by storage lookups when no record matches.
// Handlers translate it to HTTP 404.
var ErrNotFound = errors.New("record not found")

// ListingStorage provides read access to listing records.
// Listings are immutable inputs for request handling; SaveListing exists only
// for the startup seed loader.
type ListingStorage interface {
	GetListing(ctx context.Context, id int64) (*models.Listing, error)
	ListListings(ctx context.Context, limit int) ([]*models.Listing, error)
	SaveListing(ctx context.Context, listing *models.Listing) error

	// Ping performs a minimal read to verify the store is reachable.
	Ping(ctx context.Context) error
}

// LeadStorage persists captured leads. Insert-only by design.
type LeadStorage interface {
	InsertLead(ctx context.Context, lead *models.Lead) error
	CountLeads(ctx context.Context, listingID int64) (int, error)
}

// StorageManager aggregates the storage interfaces behind one handle.
type StorageManager interface {
	ListingStorage() ListingStorage
	LeadStorage() LeadStorage

	// LoadListingsFromFiles seeds listings from TOML files in dir.
	LoadListingsFromFiles(ctx context.Context, dir string) error

	// DB returns the underlying database handle (maintenance use only).
	DB() interface{}

	Close() error
}
