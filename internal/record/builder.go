// Package record turns a finished timer run or a manual entry form into a
// session ready for the store. Both entry points are pure.
package record

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/alexanderramin/tempo/internal/validate"
)

// ManualInput is the raw manual-entry form. Every field arrives as typed text.
type ManualInput struct {
	ClientName  string `form:"client" validate:"required"`
	ProjectName string `form:"project" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Hours       string `form:"hours" validate:"required"`
}

type timerInput struct {
	ClientRef   string `form:"client" validate:"required"`
	ProjectName string `form:"project" validate:"required"`
}

// RoundHours converts d to hours rounded to two decimal places.
func RoundHours(d time.Duration) float64 {
	ms := float64(d.Milliseconds())
	return math.Round(ms/3_600_000*100) / 100
}

// FromTimer builds a session from a completed timer event. The session date
// is the UTC calendar date of the finish instant.
func FromTimer(ev timer.Completed, ownerID string) (*domain.Session, error) {
	in := timerInput{
		ClientRef:   strings.TrimSpace(ev.ClientRef),
		ProjectName: strings.TrimSpace(ev.ProjectName),
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if ev.Duration < 0 {
		return nil, domain.NewValidationError("duration", "must not be negative")
	}

	finished := ev.FinishedAt.UTC()
	s := &domain.Session{
		OwnerID:     ownerID,
		ClientID:    in.ClientRef,
		ProjectName: in.ProjectName,
		Date:        time.Date(finished.Year(), finished.Month(), finished.Day(), 0, 0, 0, 0, time.UTC),
		Hours:       RoundHours(ev.Duration),
		Source:      domain.SourceTimer,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromManual builds a session from the manual entry form. Hours are taken
// verbatim from the form text; only the client name is known at this point.
func FromManual(in ManualInput, ownerID string) (*domain.Session, error) {
	in = ManualInput{
		ClientName:  strings.TrimSpace(in.ClientName),
		ProjectName: strings.TrimSpace(in.ProjectName),
		Date:        strings.TrimSpace(in.Date),
		Hours:       strings.TrimSpace(in.Hours),
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	hours, err := ParseHours(in.Hours)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateLayout, in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must use YYYY-MM-DD format")
	}

	s := &domain.Session{
		OwnerID:     ownerID,
		ClientName:  in.ClientName,
		ProjectName: in.ProjectName,
		Date:        date,
		Hours:       hours,
		Source:      domain.SourceManual,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseHours parses a user-entered hour count. It rejects text that is not
// a finite number and negative values.
func ParseHours(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewValidationError("hours", "must be a number")
	}
	if v < 0 {
		return 0, domain.NewValidationError("hours", "must not be negative")
	}
	return v, nil
}
