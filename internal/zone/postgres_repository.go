package zone

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

// NewPostgresRepository creates a new PostgreSQL zone repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a zone by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Zone, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM zones
		WHERE id = $1
	`

	var zone Zone
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&zone.ID,
		&zone.Attrs,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	return &zone, nil
}

// List retrieves a page of zones ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM zones`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM zones
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*Zone
	for rows.Next() {
		var zone Zone
		if err := rows.Scan(&zone.ID, &zone.Attrs, &zone.CreatedAt, &zone.UpdatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, &zone)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Items: zones, Total: total}, nil
}

// Create creates a new zone.
func (r *PostgresRepository) Create(ctx context.Context, zone *Zone) error {
	query := `
		INSERT INTO zones (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, zone.ID, zone.Attrs, zone.CreatedAt, zone.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing zone.
func (r *PostgresRepository) Update(ctx context.Context, zone *Zone) error {
	query := `
		UPDATE zones SET attrs = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, zone.ID, zone.Attrs, zone.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrZoneNotFound
	}
	return nil
}

// Delete deletes a zone by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
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
