package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	badgerhold "github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/handlers"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/services/assistant"
	"github.com/ternarybob/domus/internal/services/document"
	"github.com/ternarybob/domus/internal/services/leads"
	"github.com/ternarybob/domus/internal/services/llm"
	"github.com/ternarybob/domus/internal/services/scheduler"
	"github.com/ternarybob/domus/internal/services/summary"
	badgerstorage "github.com/ternarybob/domus/internal/storage/badger"
)

// App holds all application dependencies, wired once at startup.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	StorageManager interfaces.StorageManager

	// Services
	Completion  interfaces.CompletionService
	Assistant   *assistant.Service
	Summary     *summary.Service
	Renderer    *document.Renderer
	Leads       *leads.Service
	Maintenance *scheduler.Maintenance

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	AnswerHandler   *handlers.AnswerHandler
	LeadHandler     *handlers.LeadHandler
	DocumentHandler *handlers.DocumentHandler
}

// New creates and wires the application. A missing or misconfigured
// completion provider is not fatal: the assistant and summary services
// degrade to their deterministic fallbacks.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: config,
		Logger: logger,
	}

	// Storage
	storageManager, err := badgerstorage.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	// Seed listings from TOML files before serving requests.
	if err := storageManager.LoadListingsFromFiles(context.Background(), config.Listings.Dir); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to load listing seed files: %w", err)
	}

	if seeded, err := storageManager.ListingStorage().ListListings(context.Background(), 0); err == nil {
		logger.Info().Int("listings", len(seeded)).Msg("Listing store ready")
	}

	// Completion provider (optional)
	completion, err := llm.NewCompletionService(config, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("provider", string(config.LLM.DefaultProvider)).
			Msg("Completion provider unavailable, answers will use the deterministic fallback")
	} else {
		app.Completion = completion
		logger.Info().
			Str("provider", string(completion.GetProviderType())).
			Msg("Completion provider initialized")
	}

	// Services
	app.Assistant = assistant.NewService(app.Completion, logger)
	app.Summary = summary.NewService(app.Completion, logger)
	app.Renderer = document.NewRenderer(logger)
	app.Leads = leads.NewService(storageManager.LeadStorage(), logger)

	// Periodic Badger value-log GC
	if store, ok := storageManager.DB().(*badgerhold.Store); ok {
		app.Maintenance = scheduler.NewMaintenance(config, store.Badger(), logger)
		if err := app.Maintenance.Start(); err != nil {
			storageManager.Close()
			return nil, fmt.Errorf("failed to start maintenance scheduler: %w", err)
		}
	}

	// Handlers
	listings := storageManager.ListingStorage()
	app.APIHandler = handlers.NewAPIHandler(listings, logger)
	app.AnswerHandler = handlers.NewAnswerHandler(listings, app.Assistant, logger)
	app.LeadHandler = handlers.NewLeadHandler(app.Leads, logger)
	app.DocumentHandler = handlers.NewDocumentHandler(listings, app.Summary, app.Renderer, logger)

	logger.Info().Msg("Application initialized")

	return app, nil
}

// Close releases all application resources in reverse dependency order.
func (a *App) Close() {
	if a.Maintenance != nil {
		a.Maintenance.Stop()
	}

	if a.Completion != nil {
		if err := a.Completion.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close completion provider")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}

	a.Logger.Info().Msg("Application closed")
}
