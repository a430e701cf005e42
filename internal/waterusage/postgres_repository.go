package waterusage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquagrid/aquagrid/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository backed
// by a JSONB document column.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL usage repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a usage by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Usage, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM water_usage
		WHERE id = $1
	`

	var usage Usage
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&usage.ID,
		&usage.Attrs,
		&usage.CreatedAt,
		&usage.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUsageNotFound
		}
		return nil, err
	}

	return &usage, nil
}

// List retrieves a page of usage records ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM water_usage`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM water_usage
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Usage
	for rows.Next() {
		var usage Usage
		if err := rows.Scan(&usage.ID, &usage.Attrs, &usage.CreatedAt, &usage.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, &usage)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Items: records, Total: total}, nil
}

// Create creates a new usage.
func (r *PostgresRepository) Create(ctx context.Context, usage *Usage) error {
	query := `
		INSERT INTO water_usage (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, usage.ID, usage.Attrs, usage.CreatedAt, usage.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing usage.
func (r *PostgresRepository) Update(ctx context.Context, usage *Usage) error {
	query := `
		UPDATE water_usage SET attrs = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, usage.ID, usage.Attrs, usage.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrUsageNotFound
	}
	return nil
}

// Delete deletes a usage by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM water_usage WHERE id = $1`, id)
	return err
}

func normalizePage(opts ListOptions) (page, limit int) {
	page = opts.Page
	if page <= 0 {
		page = 1
	}
	limit = opts.Limit
	if limit <= 0 {
		limit = 50
	}
	return page, limit
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
