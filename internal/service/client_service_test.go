package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_Create(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	c, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{
		Name:           "  Acme ",
		AvailableHours: "10",
		Info:           "retainer",
		Category:       " agency ",
		HasFee:         true,
		HourlyRate:     "85.5",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, 10.0, c.AvailableHours)
	assert.Equal(t, 85.5, c.HourlyRate)
	assert.True(t, c.HasFee)

	stored, err := r.clients.GetByID(ctx, testutil.TestOwnerID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "retainer", stored.Info)
	assert.Equal(t, "agency", stored.Category)

	cached := svc.Cached(testutil.TestOwnerID)
	require.Len(t, cached, 1, "create refreshes the cached list")
	assert.Equal(t, c.ID, cached[0].ID)
}

func TestClientService_Create_DefaultsUnparseableHours(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	for _, text := range []string{"", "ten", "NaN", "Inf"} {
		c, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Client " + text, AvailableHours: text})
		require.NoError(t, err, text)
		assert.Equal(t, 0.0, c.AvailableHours, text)
	}
}

func TestClientService_Create_EmptyNameLeavesListUnchanged(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	_, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme", AvailableHours: "10"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "   ", AvailableHours: "5"})
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	list, err := svc.List(ctx, testutil.TestOwnerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientService_Create_NegativeHoursRejected(t *testing.T) {
	r := setupRepos(t)
	svc := NewClientService(r.clients, r.uow)

	_, err := svc.Create(context.Background(), testutil.TestOwnerID, ClientInput{Name: "Acme", AvailableHours: "-3"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientService_List_CreationOrderPerOwner(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := svc.Create(ctx, "owner-a", ClientInput{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "owner-b", ClientInput{Name: "Other"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Zeta", list[0].Name)
	assert.Equal(t, "Alpha", list[1].Name)
	assert.Equal(t, "Mid", list[2].Name)

	empty, err := svc.List(ctx, "owner-c")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Len(t, svc.Cached("owner-b"), 1)
	assert.Nil(t, svc.Cached("owner-d"))
}

func TestClientService_FindByName(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	acme, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme"})
	require.NoError(t, err)

	got, err := svc.FindByName(ctx, testutil.TestOwnerID, " acme ")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, got.ID)

	_, err = svc.FindByName(ctx, testutil.TestOwnerID, "Globex")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.FindByName(ctx, "someone-else", "Acme")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientService_GetByID_OtherOwner(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewClientService(r.clients, r.uow)

	acme, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, "intruder", acme.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStore)
}
