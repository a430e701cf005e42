package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquagrid/aquagrid/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository backed
// by a JSONB document column. The refresh token carries a unique index
// on attrs->>'refreshToken'.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL session repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a session by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var s Session
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Attrs, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByRefreshToken retrieves a session by its refresh token.
func (r *PostgresRepository) FindByRefreshToken(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM sessions
		WHERE attrs->>'refreshToken' = $1
	`

	var s Session
	err := r.pool.QueryRow(ctx, query, token).Scan(&s.ID, &s.Attrs, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create creates a new session.
func (r *PostgresRepository) Create(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, s.ID, s.Attrs, s.CreatedAt, s.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing session.
func (r *PostgresRepository) Update(ctx context.Context, s *Session) error {
	query := `
		UPDATE sessions SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, s.ID, s.Attrs, s.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// InvalidateAllForUser marks every session of a user as invalid.
func (r *PostgresRepository) InvalidateAllForUser(ctx context.Context, userID string) error {
	query := `
		UPDATE sessions
		SET attrs = jsonb_set(attrs, '{isValid}', 'false'), updated_at = $2
		WHERE attrs->>'userId' = $1
	`
	_, err := r.pool.Exec(ctx, query, userID, time.Now())
	return err
}

// Delete deletes a session by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
