package models

import (
	"time"
)

// Listing represents a real-estate property record.
// Numeric fields are pointers: a nil value means "non communiqué" (NC) and
// must never be rendered as zero.
type Listing struct {
	ID    int64  `json:"id" toml:"id" badgerhold:"key"`
	Title string `json:"title" toml:"title"`
	City  string `json:"city" toml:"city" badgerhold:"index"`

	// Pricing and dimensions (currency-less price, surface in m²)
	Price   *float64 `json:"price,omitempty" toml:"price,omitempty"`
	Surface *float64 `json:"surface,omitempty" toml:"surface,omitempty"`

	// Layout
	Rooms    *int   `json:"rooms,omitempty" toml:"rooms,omitempty"`
	Bedrooms *int   `json:"bedrooms,omitempty" toml:"bedrooms,omitempty"`
	Floor    *int   `json:"floor,omitempty" toml:"floor,omitempty"`
	Exposure string `json:"exposure,omitempty" toml:"exposure,omitempty"`

	// Free text and external references
	Description string   `json:"description,omitempty" toml:"description,omitempty"`
	Links       []string `json:"links,omitempty" toml:"links,omitempty"`

	CreatedAt time.Time `json:"created_at" toml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at" toml:"updated_at,omitempty"`
}

// HasLinks reports whether the listing carries any non-empty external link.
func (l *Listing) HasLinks() bool {
	for _, link := range l.Links {
		if link != "" {
			return true
		}
	}
	return false
}
