package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ListingStorage implements the ListingStorage interface for Badger
type ListingStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewListingStorage creates a new ListingStorage instance
func NewListingStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ListingStorage {
	return &ListingStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ListingStorage) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Store().Get(id, &listing); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("listing %d: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return &listing, nil
}

func (s *ListingStorage) ListListings(ctx context.Context, limit int) ([]*models.Listing, error) {
	var listings []models.Listing
	query := &badgerhold.Query{}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&listings, query); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	result := make([]*models.Listing, len(listings))
	for i := range listings {
		result[i] = &listings[i]
	}
	return result, nil
}

func (s *ListingStorage) SaveListing(ctx context.Context, listing *models.Listing) error {
	if listing.ID <= 0 {
		return fmt.Errorf("listing ID must be positive")
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	if err := s.db.Store().Upsert(listing.ID, listing); err != nil {
		return fmt.Errorf("failed to save listing %d: %w", listing.ID, err)
	}
	return nil
}

// Ping verifies the store is reachable with a minimal read.
func (s *ListingStorage) Ping(ctx context.Context) error {
	var listing models.Listing
	err := s.db.Store().Get(int64(0), &listing)
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("storage probe failed: %w", err)
	}
	return nil
}
