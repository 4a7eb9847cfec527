package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db      *BadgerDB
	listing interfaces.ListingStorage
	lead    interfaces.LeadStorage
	logger  arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:      db,
		listing: NewListingStorage(db, logger),
		lead:    NewLeadStorage(db, logger),
		logger:  logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ListingStorage returns the Listing storage interface
func (m *Manager) ListingStorage() interfaces.ListingStorage {
	return m.listing
}

// LeadStorage returns the Lead storage interface
func (m *Manager) LeadStorage() interfaces.LeadStorage {
	return m.lead
}

// DB returns the underlying badgerhold store
func (m *Manager) DB() interface{} {
	return m.db.Store()
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
