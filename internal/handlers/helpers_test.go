package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// fakeListingStore is an in-memory ListingStorage for handler tests.
type fakeListingStore struct {
	listings map[int64]*models.Listing
	pingErr  error
	getErr   error
}

func newFakeListingStore(listings ...*models.Listing) *fakeListingStore {
	store := &fakeListingStore{listings: make(map[int64]*models.Listing)}
	for _, listing := range listings {
		store.listings[listing.ID] = listing
	}
	return store
}

func (f *fakeListingStore) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	listing, ok := f.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %d: %w", id, interfaces.ErrNotFound)
	}
	return listing, nil
}

func (f *fakeListingStore) ListListings(ctx context.Context, limit int) ([]*models.Listing, error) {
	result := make([]*models.Listing, 0, len(f.listings))
	for _, listing := range f.listings {
		result = append(result, listing)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeListingStore) SaveListing(ctx context.Context, listing *models.Listing) error {
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeListingStore) Ping(ctx context.Context) error {
	return f.pingErr
}

// fakeCompletion is a scriptable completion provider.
type fakeCompletion struct {
	text string
	err  error
}

func (f *fakeCompletion) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	return f.text, f.err
}

func (f *fakeCompletion) GetProviderType() interfaces.ProviderType {
	return interfaces.ProviderGemini
}

func (f *fakeCompletion) Close() error {
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func loftListing() *models.Listing {
	return &models.Listing{
		ID:          1,
		Title:       "Loft A",
		City:        "Paris",
		Price:       floatPtr(350000),
		Surface:     floatPtr(42),
		Description: "Lumineux. Proche commerces. Refait à neuf.",
		UpdatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}
