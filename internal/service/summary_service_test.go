package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_ConsumedAndRemaining(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clients := NewClientService(r.clients, r.uow)
	sessions := NewSessionService(r.sessions, r.uow)
	summary := NewSummaryService(r.clients, r.sessions)

	acme, err := clients.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme", AvailableHours: "10"})
	require.NoError(t, err)
	globex, err := clients.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Globex", AvailableHours: "20"})
	require.NoError(t, err)

	for _, h := range []float64{3, 4} {
		s := testutil.NewTestSession(acme, h)
		s.ID = ""
		require.NoError(t, sessions.Log(ctx, s))
	}
	s := testutil.NewTestSession(globex, 2)
	s.ID = ""
	require.NoError(t, sessions.Log(ctx, s))

	rows, err := summary.Summary(ctx, testutil.TestOwnerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0].Name)
	assert.InDelta(t, 7.0, rows[0].ConsumedHours, 1e-9)
	assert.InDelta(t, 3.0, rows[0].RemainingHours, 1e-9)
	assert.True(t, rows[0].Low)

	assert.Equal(t, "Globex", rows[1].Name)
	assert.InDelta(t, 18.0, rows[1].RemainingHours, 1e-9)
	assert.False(t, rows[1].Low)
}

func TestSummaryService_EmptyOwner(t *testing.T) {
	r := setupRepos(t)
	rows, err := NewSummaryService(r.clients, r.sessions).Summary(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
