package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	var buf bytes.Buffer
	svc := NewClientService(r.clients, r.uow, NewLogUseCaseObserver(&buf, slog.LevelInfo))

	_, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: ""})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=client.create")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "level=WARN", "rejected input is a warning")
	assert.Contains(t, out, `error="name is required"`)
}

type unlistableClients struct {
	repository.ClientRepo
}

func (unlistableClients) ListByOwner(context.Context, string) ([]*domain.Client, error) {
	return nil, errors.New("connection reset")
}

func TestLogUseCaseObserver_CreateReportsFailedRefresh(t *testing.T) {
	r := setupRepos(t)
	var buf bytes.Buffer
	svc := NewClientService(unlistableClients{ClientRepo: r.clients}, r.uow, NewLogUseCaseObserver(&buf, slog.LevelInfo))

	c, err := svc.Create(context.Background(), testutil.TestOwnerID, ClientInput{Name: "Acme"})
	require.NoError(t, err, "the client is stored even though the refresh failed")
	require.NotNil(t, c)

	out := buf.String()
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "refresh_failed=true")
	assert.Contains(t, out, "connection reset")

	stored, err := r.clients.GetByID(context.Background(), testutil.TestOwnerID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Name)
}

func TestLogUseCaseObserver_StoreFailureIsError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelInfo)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "session.log",
		Err:    &domain.StoreError{Op: "create session", Err: errors.New("disk full")},
		Fields: map[string]any{"source": "timer", "hours": 1.5},
	})
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "hours=1.5 source=timer", "fields are written in key order")
}

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	var buf bytes.Buffer
	single := NewLogUseCaseObserver(&buf, slog.LevelInfo)
	assert.Same(t, single, combineObservers([]UseCaseObserver{nil, single}))

	multi := combineObservers([]UseCaseObserver{single, NoopUseCaseObserver{}})
	assert.IsType(t, MultiObserver{}, multi)
}

func TestLogUseCaseObserver_LevelFiltersSuccess(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelWarn)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "summary.load", Success: true})
	assert.Empty(t, buf.String())
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, slog.LevelInfo))
}

func TestPrometheusUseCaseObserver_Counts(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	obs := NewPrometheusUseCaseObserver(reg)
	svc := NewClientService(r.clients, r.uow, obs)

	_, err := svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: "Acme"})
	require.NoError(t, err)
	_, _ = svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: ""})
	_, _ = svc.Create(ctx, testutil.TestOwnerID, ClientInput{Name: " "})

	total := obs.(*promUseCaseObserver).total
	assert.Equal(t, 1.0, promtestutil.ToFloat64(total.WithLabelValues("client.create", "success")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(total.WithLabelValues("client.create", "error")))
	assert.Equal(t, 1, promtestutil.CollectAndCount(obs.(*promUseCaseObserver).duration))
}

func TestMultiObserver_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := MultiObserver{
		NewLogUseCaseObserver(&a, slog.LevelInfo),
		nil,
		NewLogUseCaseObserver(&b, slog.LevelInfo),
	}
	multi.ObserveUseCase(context.Background(), UseCaseEvent{Name: "session.log", Success: true})
	assert.Contains(t, a.String(), "use_case=session.log")
	assert.Contains(t, b.String(), "use_case=session.log")
}
