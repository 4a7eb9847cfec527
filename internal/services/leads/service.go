package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// CreateRequest is the lead intake payload. listingId and phone are required;
// everything else is optional with fixed defaults.
type CreateRequest struct {
	ListingID int64  `json:"listingId" validate:"required,gt=0"`
	Name      string `json:"name"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Message   string `json:"message"`
}

// ValidationError wraps field-level validation failures so handlers can map
// them to 422 without inspecting validator internals.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// Service records sales leads. Exactly one insert attempt per valid
// submission; store errors surface as-is.
type Service struct {
	store    interfaces.LeadStorage
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewService creates a new lead intake service
func NewService(store interfaces.LeadStorage, logger arbor.ILogger) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Create validates the request, applies defaults and inserts the lead. A
// *ValidationError means no store mutation was attempted.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Lead, error) {
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Detail: validationDetail(err)}
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = models.DefaultLeadMessage
	}

	lead := &models.Lead{
		ID:        uuid.New().String(),
		ListingID: req.ListingID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
		Message:   message,
		Status:    models.LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.InsertLead(ctx, lead); err != nil {
		s.logger.Error().
			Err(err).
			Int64("listing_id", lead.ListingID).
			Msg("Failed to insert lead")
		return nil, fmt.Errorf("failed to insert lead: %w", err)
	}

	event := s.logger.Info().
		Str("lead_id", lead.ID).
		Int64("listing_id", lead.ListingID)
	if count, countErr := s.store.CountLeads(ctx, lead.ListingID); countErr == nil {
		event.Int("listing_leads", count)
	}
	event.Msg("Lead recorded")

	return lead, nil
}

func validationDetail(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "ListingID":
			parts = append(parts, "listingId is required and must be positive")
		case "Phone":
			parts = append(parts, "phone is required")
		case "Email":
			parts = append(parts, "email is invalid")
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
