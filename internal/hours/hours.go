// Package hours derives consumed and remaining hours per client. Totals are
// always recomputed from the full session list; nothing is kept incrementally.
package hours

import "github.com/alexanderramin/tempo/internal/domain"

// LowHoursThreshold is the remaining-hours value below which a client is
// flagged. It is a fixed policy, not a setting.
const LowHoursThreshold = 8.0

// Totals maps a client reference to the sum of its sessions' hours.
type Totals map[string]float64

// Consumed returns the hours recorded against ref, or 0.
func (t Totals) Consumed(ref string) float64 {
	return t[ref]
}

// Aggregate sums hours per client reference. Zero-hour sessions contribute
// nothing; plain floating-point addition is used.
func Aggregate(sessions []*domain.Session) Totals {
	totals := make(Totals)
	for _, s := range sessions {
		if s == nil || s.Hours == 0 {
			continue
		}
		totals[s.ClientRef()] += s.Hours
	}
	return totals
}

// Remaining returns the client's budget minus its consumed hours. The
// result may be negative when the client is over budget.
func Remaining(c *domain.Client, totals Totals) float64 {
	return c.AvailableHours - totals.Consumed(c.ID)
}

// IsLow reports whether remaining hours fall below LowHoursThreshold.
// Exactly 8 is not low.
func IsLow(remaining float64) bool {
	return remaining < LowHoursThreshold
}

// ClientSummary is one row of the per-client dashboard.
type ClientSummary struct {
	ClientID       string
	Name           string
	AvailableHours float64
	ConsumedHours  float64
	RemainingHours float64
	Low            bool
	HasFee         bool
	HourlyRate     float64
}

// Summarize builds one summary row per client, in the order the clients
// were given.
func Summarize(clients []*domain.Client, sessions []*domain.Session) []ClientSummary {
	totals := Aggregate(sessions)
	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		remaining := Remaining(c, totals)
		out = append(out, ClientSummary{
			ClientID:       c.ID,
			Name:           c.Name,
			AvailableHours: c.AvailableHours,
			ConsumedHours:  totals.Consumed(c.ID),
			RemainingHours: remaining,
			Low:            IsLow(remaining),
			HasFee:         c.HasFee,
			HourlyRate:     c.HourlyRate,
		})
	}
	return out
}

// LowCount returns how many rows carry the low-hours warning.
func LowCount(rows []ClientSummary) int {
	n := 0
	for _, r := range rows {
		if r.Low {
			n++
		}
	}
	return n
}
