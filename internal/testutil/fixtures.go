package testutil

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

// TestOwnerID is the owner used by fixtures unless overridden.
const TestOwnerID = "owner-test"

// Client options
type ClientOption func(*domain.Client)

func WithAvailableHours(h float64) ClientOption {
	return func(c *domain.Client) {
		c.AvailableHours = h
	}
}

func WithClientOwner(ownerID string) ClientOption {
	return func(c *domain.Client) {
		c.OwnerID = ownerID
	}
}

func WithFee() ClientOption {
	return func(c *domain.Client) {
		c.HasFee = true
	}
}

func WithHourlyRate(r float64) ClientOption {
	return func(c *domain.Client) {
		c.HourlyRate = r
	}
}

func WithClientCreatedAt(t time.Time) ClientOption {
	return func(c *domain.Client) {
		c.CreatedAt = t
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	c := &domain.Client{
		ID:        uuid.New().String(),
		OwnerID:   TestOwnerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session options
type SessionOption func(*domain.Session)

func WithSessionOwner(ownerID string) SessionOption {
	return func(s *domain.Session) {
		s.OwnerID = ownerID
	}
}

func WithProject(name string) SessionOption {
	return func(s *domain.Session) {
		s.ProjectName = name
	}
}

func WithDate(d time.Time) SessionOption {
	return func(s *domain.Session) {
		s.Date = d
	}
}

func WithSource(src domain.SessionSource) SessionOption {
	return func(s *domain.Session) {
		s.Source = src
	}
}

// NewTestSession returns a persisted-shape session for client c.
func NewTestSession(c *domain.Client, hours float64, opts ...SessionOption) *domain.Session {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:          uuid.New().String(),
		OwnerID:     c.OwnerID,
		ClientID:    c.ID,
		ClientName:  c.Name,
		ProjectName: "General",
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Hours:       hours,
		Source:      domain.SourceManual,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
