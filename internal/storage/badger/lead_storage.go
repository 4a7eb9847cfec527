package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// LeadStorage implements the LeadStorage interface for Badger
type LeadStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewLeadStorage creates a new LeadStorage instance
func NewLeadStorage(db *BadgerDB, logger arbor.ILogger) interfaces.LeadStorage {
	return &LeadStorage{
		db:     db,
		logger: logger,
	}
}

// InsertLead stores a new lead. Exactly one insert attempt is made; an
// existing ID is an error, never an overwrite.
func (s *LeadStorage) InsertLead(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		return fmt.Errorf("lead ID is required")
	}

	if err := s.db.Store().Insert(lead.ID, lead); err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("lead %s already exists", lead.ID)
		}
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	s.logger.Debug().
		Str("lead_id", lead.ID).
		Int64("listing_id", lead.ListingID).
		Msg("Lead stored")

	return nil
}

func (s *LeadStorage) CountLeads(ctx context.Context, listingID int64) (int, error) {
	count, err := s.db.Store().Count(&models.Lead{}, badgerhold.Where("ListingID").Eq(listingID).Index("ListingID"))
	if err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return int(count), nil
}
