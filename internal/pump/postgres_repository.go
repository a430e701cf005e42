package pump

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

// NewPostgresRepository creates a new PostgreSQL pump repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a pump by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Pump, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM pumps
		WHERE id = $1
	`

	var pump Pump
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&pump.ID,
		&pump.Attrs,
		&pump.CreatedAt,
		&pump.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPumpNotFound
		}
		return nil, err
	}

	return &pump, nil
}

// List retrieves a page of pumps ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM pumps`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM pumps
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pumps []*Pump
	for rows.Next() {
		var pump Pump
		if err := rows.Scan(&pump.ID, &pump.Attrs, &pump.CreatedAt, &pump.UpdatedAt); err != nil {
			return nil, err
		}
		pumps = append(pumps, &pump)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Items: pumps, Total: total}, nil
}

// Create creates a new pump.
func (r *PostgresRepository) Create(ctx context.Context, pump *Pump) error {
	query := `
		INSERT INTO pumps (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, pump.ID, pump.Attrs, pump.CreatedAt, pump.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing pump.
func (r *PostgresRepository) Update(ctx context.Context, pump *Pump) error {
	query := `
		UPDATE pumps SET attrs = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, pump.ID, pump.Attrs, pump.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrPumpNotFound
	}
	return nil
}

// Delete deletes a pump by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pumps WHERE id = $1`, id)
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
