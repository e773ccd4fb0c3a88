package domain

import (
	"strings"
	"time"
)

// Client is a billable entity with an optional monthly hours budget.
// Clients are owned by exactly one user and are never mutated after creation.
type Client struct {
	ID             string
	OwnerID        string
	Name           string
	AvailableHours float64
	Info           string
	Category       string
	HasFee         bool
	HourlyRate     float64
	CreatedAt      time.Time
}

// Validate checks the invariants a client must satisfy before it is stored.
func (c *Client) Validate() error {
	if c.OwnerID == "" {
		return NewValidationError("owner", "is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if c.AvailableHours < 0 {
		return NewValidationError("available hours", "must not be negative")
	}
	if c.HourlyRate < 0 {
		return NewValidationError("hourly rate", "must not be negative")
	}
	return nil
}

// DisplayID returns the first 8 characters of ID for compact listings.
func (c *Client) DisplayID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
