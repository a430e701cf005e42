package schedule

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

// NewPostgresRepository creates a new PostgreSQL schedule repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a schedule by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Schedule, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	var schedule Schedule
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.Attrs,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return &schedule, nil
}

// List retrieves a page of schedules ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM schedules`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM schedules
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*Schedule
	for rows.Next() {
		var schedule Schedule
		if err := rows.Scan(&schedule.ID, &schedule.Attrs, &schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Items: schedules, Total: total}, nil
}

// Create creates a new schedule.
func (r *PostgresRepository) Create(ctx context.Context, schedule *Schedule) error {
	query := `
		INSERT INTO schedules (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, schedule.ID, schedule.Attrs, schedule.CreatedAt, schedule.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing schedule.
func (r *PostgresRepository) Update(ctx context.Context, schedule *Schedule) error {
	query := `
		UPDATE schedules SET attrs = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, schedule.ID, schedule.Attrs, schedule.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// Delete deletes a schedule by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
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
