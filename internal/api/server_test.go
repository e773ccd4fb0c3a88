package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/tempo/internal/auth"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	auth *auth.LocalProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)

	reg := prometheus.NewRegistry()
	obs := service.NewPrometheusUseCaseObserver(reg)

	provider := auth.NewLocalProvider(
		repository.NewSQLiteUserRepo(database),
		repository.NewSQLiteAuthSessionRepo(database),
		auth.WithHashParams(auth.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
	)

	srv := NewServer(Deps{
		Auth:     provider,
		Clients:  service.NewClientService(clientRepo, uow, obs),
		Sessions: service.NewSessionService(sessionRepo, uow, obs),
		Summary:  service.NewSummaryService(clientRepo, sessionRepo, obs),
		Metrics:  reg,
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, auth: provider}
}

func (ts *testServer) signIn(t *testing.T) {
	t.Helper()
	_, err := ts.auth.SignUp(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
}

func (ts *testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func errorMessage(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	msg, _ := e["message"].(string)
	return msg
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_RequiresSignedInUser(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/api/clients", "/api/sessions", "/api/summary"} {
		status, body := ts.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "not signed in", errorMessage(body))
	}
}

func TestAPI_ClientAndSessionFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t)

	status, body := ts.do(t, http.MethodPost, "/api/clients", `{"name":"Acme","available_hours":10,"category":" retainer "}`)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Acme", body["name"])
	assert.Equal(t, 10.0, body["available_hours"])
	assert.Equal(t, "retainer", body["category"])

	status, _ = ts.do(t, http.MethodPost, "/api/sessions", `{"client":"Acme","project":"Website","date":"2025-03-14","hours":"3"}`)
	require.Equal(t, http.StatusCreated, status)
	status, body = ts.do(t, http.MethodPost, "/api/sessions", `{"client":"acme","project":"Website","date":"2025-03-14","hours":4}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Acme", body["client_name"])
	assert.Equal(t, "manual", body["source"])

	status, body = ts.do(t, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, status)
	rows := body["clients"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.InDelta(t, 7.0, row["consumed_hours"], 1e-9)
	assert.InDelta(t, 3.0, row["remaining_hours"], 1e-9)
	assert.Equal(t, true, row["low"])
	assert.Equal(t, 1.0, body["low_count"])

	status, body = ts.do(t, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sessions"], 2)

	status, body = ts.do(t, http.MethodGet, "/api/clients", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["clients"], 1)
}

func TestAPI_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t)

	status, body := ts.do(t, http.MethodPost, "/api/clients", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid input: name is required", errorMessage(body))

	status, body = ts.do(t, http.MethodPost, "/api/sessions", `{"client":"Ghost","project":"P","date":"2025-03-14","hours":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorMessage(body), "is not registered")

	status, body = ts.do(t, http.MethodPost, "/api/sessions", `{"client":"Ghost","project":"P","hours":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid input: hours must be a number", errorMessage(body))

	status, _ = ts.do(t, http.MethodPost, "/api/clients", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Metrics(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t)
	status, _ := ts.do(t, http.MethodPost, "/api/clients", `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, status)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `tempo_use_case_total{outcome="success",use_case="client.create"} 1`)
}

func TestFlexText(t *testing.T) {
	var v struct {
		A flexText `json:"a"`
		B flexText `json:"b"`
		C flexText `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1.5","b":2.25,"c":null}`), &v))
	assert.Equal(t, flexText("1.5"), v.A)
	assert.Equal(t, flexText("2.25"), v.B)
	assert.Equal(t, flexText(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
