package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/hours"
	"github.com/alexanderramin/tempo/internal/record"
	"github.com/alexanderramin/tempo/internal/service"
)

const maxBodyBytes = 64 << 10

// flexText accepts a JSON string or number and keeps its text, so numeric
// fields go through the same parsing as typed form input.
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexText(n.String())
	return nil
}

type clientJSON struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	AvailableHours float64   `json:"available_hours"`
	Info           string    `json:"info"`
	Category       string    `json:"category"`
	HasFee         bool      `json:"has_fee"`
	HourlyRate     float64   `json:"hourly_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

func toClientJSON(c *domain.Client) clientJSON {
	return clientJSON{
		ID:             c.ID,
		Name:           c.Name,
		AvailableHours: c.AvailableHours,
		Info:           c.Info,
		Category:       c.Category,
		HasFee:         c.HasFee,
		HourlyRate:     c.HourlyRate,
		CreatedAt:      c.CreatedAt,
	}
}

type sessionJSON struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name"`
	ProjectName string    `json:"project_name"`
	Date        string    `json:"date"`
	Hours       float64   `json:"hours"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSessionJSON(s *domain.Session) sessionJSON {
	return sessionJSON{
		ID:          s.ID,
		ClientID:    s.ClientID,
		ClientName:  s.ClientName,
		ProjectName: s.ProjectName,
		Date:        s.DateString(),
		Hours:       s.Hours,
		Source:      string(s.Source),
		CreatedAt:   s.CreatedAt,
	}
}

type summaryJSON struct {
	ClientID       string  `json:"client_id"`
	Name           string  `json:"name"`
	AvailableHours float64 `json:"available_hours"`
	ConsumedHours  float64 `json:"consumed_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Low            bool    `json:"low"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.deps.Clients.List(r.Context(), ownerFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]clientJSON, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientJSON(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": out})
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string   `json:"name"`
		AvailableHours flexText `json:"available_hours"`
		Info           string   `json:"info"`
		Category       string   `json:"category"`
		HasFee         bool     `json:"has_fee"`
		HourlyRate     flexText `json:"hourly_rate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.deps.Clients.Create(r.Context(), ownerFrom(r), service.ClientInput{
		Name:           req.Name,
		AvailableHours: string(req.AvailableHours),
		Info:           req.Info,
		Category:       req.Category,
		HasFee:         req.HasFee,
		HourlyRate:     string(req.HourlyRate),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientJSON(c))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.deps.Sessions.List(r.Context(), ownerFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]sessionJSON, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionJSON(sess))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Client  string   `json:"client"`
		Project string   `json:"project"`
		Date    string   `json:"date"`
		Hours   flexText `json:"hours"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format(domain.DateLayout)
	}
	sess, err := record.FromManual(record.ManualInput{
		ClientName:  req.Client,
		ProjectName: req.Project,
		Date:        req.Date,
		Hours:       string(req.Hours),
	}, ownerFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.deps.Sessions.Log(r.Context(), sess); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionJSON(sess))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deps.Summary.Summary(r.Context(), ownerFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]summaryJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, summaryJSON{
			ClientID:       row.ClientID,
			Name:           row.Name,
			AvailableHours: row.AvailableHours,
			ConsumedHours:  row.ConsumedHours,
			RemainingHours: row.RemainingHours,
			Low:            row.Low,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clients":             out,
		"low_count":           hours.LowCount(rows),
		"low_hours_threshold": hours.LowHoursThreshold,
	})
}
