package domain

import (
	"strings"
	"time"
)

// Session is one logged interval of billable work.
//
// ClientID is the stable reference used for aggregation. ClientName is a
// snapshot of the client's display name taken at write time; the manual
// entry path fills it first and the service resolves the id from it.
type Session struct {
	ID          string
	OwnerID     string
	ClientID    string
	ClientName  string
	ProjectName string
	Date        time.Time
	Hours       float64
	Source      SessionSource
	CreatedAt   time.Time
}

// ClientRef returns whichever client reference the session carries,
// preferring the stable id.
func (s *Session) ClientRef() string {
	if s.ClientID != "" {
		return s.ClientID
	}
	return s.ClientName
}

// Validate checks the invariants a session must satisfy before it is stored.
func (s *Session) Validate() error {
	if s.OwnerID == "" {
		return NewValidationError("owner", "is required")
	}
	if s.ClientRef() == "" {
		return NewValidationError("client", "is required")
	}
	if strings.TrimSpace(s.ProjectName) == "" {
		return NewValidationError("project", "is required")
	}
	if s.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	if s.Hours < 0 {
		return NewValidationError("hours", "must not be negative")
	}
	if s.Source != "" && !ValidSessionSources[s.Source] {
		return NewValidationError("source", "is not recognised")
	}
	return nil
}

// DateString formats Date as YYYY-MM-DD.
func (s *Session) DateString() string {
	return s.Date.Format(DateLayout)
}
