package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrDuplicateEmail is returned when a user with the same email exists.
var ErrDuplicateEmail = errors.New("email already in use")

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, string(u.Role), formatTimestamp(u.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE email = ?`, email)
}

func (r *SQLiteUserRepo) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT id, email, password_hash, role, created_at FROM users ` + where
	var u domain.User
	var role, createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.Role(role)
	if u.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// SQLiteAuthSessionRepo implements AuthSessionRepo as a single-row table.
type SQLiteAuthSessionRepo struct {
	db db.DBTX
}

// NewSQLiteAuthSessionRepo creates a new SQLiteAuthSessionRepo.
func NewSQLiteAuthSessionRepo(conn db.DBTX) *SQLiteAuthSessionRepo {
	return &SQLiteAuthSessionRepo{db: conn}
}

// Get returns the signed-in user id, or ErrNotFound when nobody is signed in.
func (r *SQLiteAuthSessionRepo) Get(ctx context.Context) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM auth_sessions WHERE id = 'current'`).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("auth session: %w", ErrNotFound)
		}
		return "", fmt.Errorf("reading auth session: %w", err)
	}
	return userID, nil
}

func (r *SQLiteAuthSessionRepo) Put(ctx context.Context, userID string) error {
	query := `INSERT INTO auth_sessions (id, user_id, signed_in_at) VALUES ('current', ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, signed_in_at = excluded.signed_in_at`
	if _, err := r.db.ExecContext(ctx, query, userID, nowUTC()); err != nil {
		return fmt.Errorf("writing auth session: %w", err)
	}
	return nil
}

// Clear removes the signed-in user. Clearing an empty table is not an error.
func (r *SQLiteAuthSessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = 'current'`); err != nil {
		return fmt.Errorf("clearing auth session: %w", err)
	}
	return nil
}
