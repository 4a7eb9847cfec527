package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/models"
)

type fakeLeadStore struct {
	inserted []*models.Lead
	err      error
}

func (f *fakeLeadStore) InsertLead(ctx context.Context, lead *models.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, lead)
	return nil
}

func (f *fakeLeadStore) CountLeads(ctx context.Context, listingID int64) (int, error) {
	count := 0
	for _, lead := range f.inserted {
		if lead.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := &fakeLeadStore{}
	service := NewService(store, arbor.NewLogger())

	lead, err := service.Create(context.Background(), CreateRequest{
		ListingID: 1,
		Phone:     "0600000000",
	})

	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, int64(1), lead.ListingID)
	assert.Equal(t, "0600000000", lead.Phone)
	assert.Equal(t, models.DefaultLeadMessage, lead.Message)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.False(t, lead.CreatedAt.IsZero())
}

func TestCreateKeepsProvidedFields(t *testing.T) {
	store := &fakeLeadStore{}
	service := NewService(store, arbor.NewLogger())

	lead, err := service.Create(context.Background(), CreateRequest{
		ListingID: 2,
		Name:      "Jean Dupont",
		Phone:     "0611111111",
		Email:     "jean@example.com",
		Message:   "Disponible samedi matin ?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", lead.Name)
	assert.Equal(t, "jean@example.com", lead.Email)
	assert.Equal(t, "Disponible samedi matin ?", lead.Message)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{name: "Missing ListingID", req: CreateRequest{Phone: "0600000000"}},
		{name: "Negative ListingID", req: CreateRequest{ListingID: -1, Phone: "0600000000"}},
		{name: "Missing Phone", req: CreateRequest{ListingID: 1}},
		{name: "Blank Phone", req: CreateRequest{ListingID: 1, Phone: "   "}},
		{name: "Invalid Email", req: CreateRequest{ListingID: 1, Phone: "0600000000", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLeadStore{}
			service := NewService(store, arbor.NewLogger())

			_, err := service.Create(context.Background(), tt.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)

			// No store mutation on validation failure
			assert.Empty(t, store.inserted)
		})
	}
}

func TestCreateSurfacesStoreError(t *testing.T) {
	store := &fakeLeadStore{err: errors.New("disk full")}
	service := NewService(store, arbor.NewLogger())

	_, err := service.Create(context.Background(), CreateRequest{ListingID: 1, Phone: "0600000000"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	store := &fakeLeadStore{}
	service := NewService(store, arbor.NewLogger())

	first, err := service.Create(context.Background(), CreateRequest{ListingID: 1, Phone: "0600000000"})
	require.NoError(t, err)
	second, err := service.Create(context.Background(), CreateRequest{ListingID: 1, Phone: "0600000000"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	count, err := store.CountLeads(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
