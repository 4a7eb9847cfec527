package scheduler

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
)

// Maintenance runs periodic Badger value-log garbage collection on a cron
// schedule. Badger never reclaims value-log space on its own, so a long-lived
// service has to drive GC itself.
type Maintenance struct {
	config *common.Config
	db     *badger.DB
	cron   *cron.Cron
	logger arbor.ILogger
}

// NewMaintenance creates the maintenance scheduler for the given database.
func NewMaintenance(config *common.Config, db *badger.DB, logger arbor.ILogger) *Maintenance {
	return &Maintenance{
		config: config,
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the GC job and starts the cron loop. Disabled via config is
// not an error.
func (m *Maintenance) Start() error {
	if !m.config.Maintenance.Enabled {
		m.logger.Info().Msg("Maintenance scheduler disabled")
		return nil
	}

	schedule := m.config.Maintenance.Schedule
	if _, err := m.cron.AddFunc(schedule, m.runValueLogGC); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}

	m.cron.Start()
	m.logger.Info().
		Str("schedule", schedule).
		Msg("Maintenance scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (m *Maintenance) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info().Msg("Maintenance scheduler stopped")
}

// runValueLogGC runs GC rounds until Badger reports nothing left to rewrite.
func (m *Maintenance) runValueLogGC() {
	rounds := 0
	for {
		err := m.db.RunValueLogGC(0.5)
		if err != nil {
			if err != badger.ErrNoRewrite {
				m.logger.Warn().Err(err).Msg("Value log GC failed")
			}
			break
		}
		rounds++
	}

	m.logger.Debug().
		Int("rounds", rounds).
		Msg("Value log GC completed")
}
