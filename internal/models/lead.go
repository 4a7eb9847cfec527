package models

import "time"

const (
	// LeadStatusNew is the status assigned to every freshly captured lead.
	LeadStatusNew = "new"

	// DefaultLeadMessage is used when the caller submits no message.
	DefaultLeadMessage = "Demande d'information sur le bien"
)

// Lead is a captured expression of buyer interest tied to a listing.
// Leads are insert-only: no update or delete path exists.
type Lead struct {
	ID        string    `json:"id" badgerhold:"key"`
	ListingID int64     `json:"listing_id" badgerhold:"index"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
