package badger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()

	manager, err := NewManager(arbor.NewLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "badger"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestListingSaveAndGet(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	store := manager.ListingStorage()

	listing := &models.Listing{
		ID:      1,
		Title:   "Loft A",
		City:    "Paris",
		Price:   floatPtr(350000),
		Surface: floatPtr(42),
	}
	require.NoError(t, store.SaveListing(ctx, listing))
	assert.False(t, listing.CreatedAt.IsZero())
	assert.False(t, listing.UpdatedAt.IsZero())

	got, err := store.GetListing(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Loft A", got.Title)
	assert.Equal(t, "Paris", got.City)
	require.NotNil(t, got.Price)
	assert.Equal(t, 350000.0, *got.Price)
}

func TestListingNotFound(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.ListingStorage().GetListing(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
}

func TestSaveListingRejectsNonPositiveID(t *testing.T) {
	manager := newTestManager(t)

	err := manager.ListingStorage().SaveListing(context.Background(), &models.Listing{ID: 0})
	assert.Error(t, err)
}

func TestSaveListingUpsert(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	store := manager.ListingStorage()

	require.NoError(t, store.SaveListing(ctx, &models.Listing{ID: 1, Title: "Avant"}))
	require.NoError(t, store.SaveListing(ctx, &models.Listing{ID: 1, Title: "Après"}))

	got, err := store.GetListing(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Après", got.Title)
}

func TestListListings(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	store := manager.ListingStorage()

	for id := int64(1); id <= 5; id++ {
		require.NoError(t, store.SaveListing(ctx, &models.Listing{ID: id, Title: "Bien"}))
	}

	all, err := store.ListListings(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	limited, err := store.ListListings(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPing(t *testing.T) {
	manager := newTestManager(t)
	assert.NoError(t, manager.ListingStorage().Ping(context.Background()))
}

func TestInsertLead(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	store := manager.LeadStorage()

	lead := &models.Lead{
		ID:        "lead-1",
		ListingID: 1,
		Phone:     "0600000000",
		Message:   models.DefaultLeadMessage,
		Status:    models.LeadStatusNew,
	}
	require.NoError(t, store.InsertLead(ctx, lead))

	// Insert-only: a duplicate ID is an error, never an overwrite
	err := store.InsertLead(ctx, lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInsertLeadRequiresID(t *testing.T) {
	manager := newTestManager(t)

	err := manager.LeadStorage().InsertLead(context.Background(), &models.Lead{Phone: "0600000000"})
	assert.Error(t, err)
}

func TestCountLeads(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	store := manager.LeadStorage()

	require.NoError(t, store.InsertLead(ctx, &models.Lead{ID: "a", ListingID: 1, Phone: "06"}))
	require.NoError(t, store.InsertLead(ctx, &models.Lead{ID: "b", ListingID: 1, Phone: "06"}))
	require.NoError(t, store.InsertLead(ctx, &models.Lead{ID: "c", ListingID: 2, Phone: "06"}))

	count, err := store.CountLeads(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountLeads(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLoadListingsFromFiles(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	seedDir := t.TempDir()
	seed := `
[[listing]]
id = 1
title = "Loft lumineux"
city = "Paris"
price = 350000.0
surface = 42.0
rooms = 3

[[listing]]
id = 2
title = "T2 proche gare"
city = "Lyon"
`
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "listings.toml"), []byte(seed), 0644))

	require.NoError(t, manager.LoadListingsFromFiles(ctx, seedDir))

	first, err := manager.ListingStorage().GetListing(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Loft lumineux", first.Title)
	require.NotNil(t, first.Rooms)
	assert.Equal(t, 3, *first.Rooms)

	second, err := manager.ListingStorage().GetListing(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, second.Price)
	assert.Nil(t, second.Surface)
}

func TestLoadListingsFromMissingDir(t *testing.T) {
	manager := newTestManager(t)

	// A missing seed directory is not an error
	assert.NoError(t, manager.LoadListingsFromFiles(context.Background(), filepath.Join(t.TempDir(), "absent")))
}

func TestLoadListingsSkipsInvalidEntries(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	seedDir := t.TempDir()
	seed := `
[[listing]]
title = "Sans identifiant"

[[listing]]
id = 3
title = "Valide"
`
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "listings.toml"), []byte(seed), 0644))
	require.NoError(t, manager.LoadListingsFromFiles(ctx, seedDir))

	_, err := manager.ListingStorage().GetListing(ctx, 3)
	assert.NoError(t, err)

	all, err := manager.ListingStorage().ListListings(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
