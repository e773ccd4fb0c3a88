package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, owner_id, client_id, client_name, project_name, date, hours, source, created_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OwnerID,
		s.ClientID,
		s.ClientName,
		s.ProjectName,
		s.Date.Format(domain.DateLayout),
		s.Hours,
		string(s.Source),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE owner_id = ? ORDER BY date, created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		var date, source, createdAt string
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.ClientID, &s.ClientName, &s.ProjectName, &date, &s.Hours, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if s.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		s.Source = domain.SessionSource(source)
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// ListProjectsByClient returns the distinct project names previously logged
// against a client, most recently used first.
func (r *SQLiteSessionRepo) ListProjectsByClient(ctx context.Context, ownerID, clientID string) ([]string, error) {
	query := `SELECT project_name FROM sessions
		WHERE owner_id = ? AND client_id = ?
		GROUP BY project_name
		ORDER BY MAX(rowid) DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning project name: %w", err)
		}
		projects = append(projects, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}
