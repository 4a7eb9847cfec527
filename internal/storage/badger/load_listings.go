package badger

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/domus/internal/models"
)

// ListingFile represents the structure of a listing seed file.
// Format:
//
//	[[listing]]
//	id = 1
//	title = "Loft lumineux"
//	city = "Paris"
//	price = 350000.0
//	surface = 42.0
type ListingFile struct {
	Listings []models.Listing `toml:"listing"`
}

// LoadListingsFromFiles loads listing records from TOML files in dirPath.
// Existing records with the same ID are overwritten so seed files stay the
// source of truth across restarts. A missing directory is not an error.
func (m *Manager) LoadListingsFromFiles(ctx context.Context, dirPath string) error {
	m.logger.Debug().Str("dir", dirPath).Msg("Loading listings from files")

	info, err := os.Stat(dirPath)
	if err != nil || !info.IsDir() {
		m.logger.Debug().Str("dir", dirPath).Msg("Listings directory not found, skipping seed load")
		return nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		m.logger.Warn().Err(err).Str("dir", dirPath).Msg("Failed to read listings directory")
		return nil
	}

	loadedCount := 0
	errorCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		filePath := filepath.Join(dirPath, entry.Name())
		loaded, errors := m.loadListingsFromFile(ctx, filePath)
		loadedCount += loaded
		errorCount += errors
	}

	m.logger.Info().
		Int("loaded", loadedCount).
		Int("errors", errorCount).
		Msg("Finished loading listings from files")

	return nil
}

// loadListingsFromFile loads listings from a single TOML file
func (m *Manager) loadListingsFromFile(ctx context.Context, filePath string) (loaded, errors int) {
	m.logger.Debug().Str("file", filePath).Msg("Loading listings from file")

	content, err := os.ReadFile(filePath)
	if err != nil {
		m.logger.Warn().Err(err).Str("file", filePath).Msg("Failed to read listing file")
		return 0, 1
	}

	var file ListingFile
	if err := toml.Unmarshal(content, &file); err != nil {
		m.logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse listing file")
		return 0, 1
	}

	fileName := filepath.Base(filePath)
	for i := range file.Listings {
		listing := file.Listings[i]
		if listing.ID <= 0 {
			m.logger.Warn().Str("file", fileName).Str("title", listing.Title).Msg("Skipping listing without a positive id")
			errors++
			continue
		}

		if err := m.listing.SaveListing(ctx, &listing); err != nil {
			m.logger.Error().Err(err).Int64("listing_id", listing.ID).Msg("Failed to store listing")
			errors++
			continue
		}
		loaded++
	}

	return loaded, errors
}
