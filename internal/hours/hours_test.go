package hours

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func sess(clientID string, h float64) *domain.Session {
	return &domain.Session{ClientID: clientID, Hours: h}
}

func TestAggregate_SumsPerClient(t *testing.T) {
	totals := Aggregate([]*domain.Session{
		sess("acme", 3.0),
		sess("acme", 4.0),
		sess("globex", 1.25),
		sess("globex", 0),
	})
	assert.InDelta(t, 7.0, totals.Consumed("acme"), tolerance)
	assert.InDelta(t, 1.25, totals.Consumed("globex"), tolerance)
	assert.Zero(t, totals.Consumed("initech"))
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)
	require.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestAggregate_ZeroHourSessionsContributeNothing(t *testing.T) {
	totals := Aggregate([]*domain.Session{sess("acme", 0), nil})
	_, present := totals["acme"]
	assert.False(t, present)
}

func TestAggregate_InvariantUnderReordering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clients := []string{"a", "b", "c"}

	for trial := 0; trial < 50; trial++ {
		var sessions []*domain.Session
		for i := 0; i < 30; i++ {
			sessions = append(sessions, sess(clients[rng.Intn(len(clients))], float64(rng.Intn(1000))/100))
		}
		want := Aggregate(sessions)

		shuffled := append([]*domain.Session(nil), sessions...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Aggregate(shuffled)

		for _, c := range clients {
			assert.InDelta(t, want.Consumed(c), got.Consumed(c), tolerance, "trial=%d client=%s", trial, c)
		}
	}
}

func TestAggregate_InvariantUnderSplitting(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		total := float64(rng.Intn(2000)) / 100
		split := total * rng.Float64()

		whole := Aggregate([]*domain.Session{sess("acme", total)})
		parts := Aggregate([]*domain.Session{sess("acme", split), sess("acme", total-split)})

		assert.InDelta(t, whole.Consumed("acme"), parts.Consumed("acme"), tolerance, "trial=%d", trial)
	}
}

func TestRemaining(t *testing.T) {
	c := &domain.Client{ID: "acme", Name: "Acme", AvailableHours: 20}
	totals := Totals{"acme": 13.5}

	remaining := Remaining(c, totals)
	assert.InDelta(t, 6.5, remaining, tolerance)
	assert.True(t, IsLow(remaining))
}

func TestRemaining_OverBudgetIsNegative(t *testing.T) {
	c := &domain.Client{ID: "acme", AvailableHours: 5}
	assert.InDelta(t, -2.5, Remaining(c, Totals{"acme": 7.5}), tolerance)
}

func TestRemaining_NoSessions(t *testing.T) {
	c := &domain.Client{ID: "acme", AvailableHours: 12}
	assert.Equal(t, 12.0, Remaining(c, Totals{}))
}

func TestIsLow_Boundary(t *testing.T) {
	assert.True(t, IsLow(6.5))
	assert.True(t, IsLow(7.999))
	assert.False(t, IsLow(8.0), "exactly 8 is not low")
	assert.False(t, IsLow(20))
	assert.True(t, IsLow(-3))
}

func TestSummarize(t *testing.T) {
	clients := []*domain.Client{
		{ID: "acme", Name: "Acme", AvailableHours: 10, HourlyRate: 45},
		{ID: "globex", Name: "Globex", AvailableHours: 40, HasFee: true},
	}
	sessions := []*domain.Session{sess("acme", 3), sess("acme", 4), sess("globex", 2)}

	rows := Summarize(clients, sessions)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0].Name)
	assert.InDelta(t, 7.0, rows[0].ConsumedHours, tolerance)
	assert.InDelta(t, 3.0, rows[0].RemainingHours, tolerance)
	assert.True(t, rows[0].Low)
	assert.Equal(t, 45.0, rows[0].HourlyRate)

	assert.Equal(t, "Globex", rows[1].Name)
	assert.InDelta(t, 38.0, rows[1].RemainingHours, tolerance)
	assert.False(t, rows[1].Low)
	assert.True(t, rows[1].HasFee)

	assert.Equal(t, 1, LowCount(rows))
}
