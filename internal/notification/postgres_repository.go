package notification

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquagrid/aquagrid/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository backed
// by JSONB document columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a notification by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Notification, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM notifications
		WHERE id = $1
	`

	var n Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(&n.ID, &n.Attrs, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// List retrieves a page of notifications ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanNotifications(rows)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total}, nil
}

// ListPending retrieves notifications awaiting dispatch, oldest first.
func (r *PostgresRepository) ListPending(ctx context.Context, limit int) ([]*Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM notifications
		WHERE attrs->>'status' = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotifications(rows)
}

// Create creates a new notification.
func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, n.ID, n.Attrs, n.CreatedAt, n.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing notification.
func (r *PostgresRepository) Update(ctx context.Context, n *Notification) error {
	query := `
		UPDATE notifications SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, n.ID, n.Attrs, n.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Delete deletes a notification and leaves its subscribers untouched; no
// cascade is performed at this layer.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}

// GetSubscriber retrieves a subscriber by ID.
func (r *PostgresRepository) GetSubscriber(ctx context.Context, id string) (*Subscriber, error) {
	query := `
		SELECT id, notification_id, attrs, created_at, updated_at
		FROM notification_subscribers
		WHERE id = $1
	`

	var s Subscriber
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.NotificationID, &s.Attrs, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListSubscribers retrieves a page of a notification's subscribers.
func (r *PostgresRepository) ListSubscribers(ctx context.Context, notificationID string, opts ListOptions) (*SubscriberListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	countQuery := `SELECT count(*) FROM notification_subscribers WHERE notification_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, notificationID).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, notification_id, attrs, created_at, updated_at
		FROM notification_subscribers
		WHERE notification_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, notificationID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscribers []*Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.NotificationID, &s.Attrs, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &SubscriberListResult{Items: subscribers, Total: total}, nil
}

// CreateSubscriber creates a new subscriber.
func (r *PostgresRepository) CreateSubscriber(ctx context.Context, s *Subscriber) error {
	query := `
		INSERT INTO notification_subscribers (id, notification_id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, s.ID, s.NotificationID, s.Attrs, s.CreatedAt, s.UpdatedAt)
	return database.MapError(err)
}

// UpdateSubscriber updates an existing subscriber.
func (r *PostgresRepository) UpdateSubscriber(ctx context.Context, s *Subscriber) error {
	query := `
		UPDATE notification_subscribers SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, s.ID, s.Attrs, s.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

// DeleteSubscriber deletes a subscriber by ID.
func (r *PostgresRepository) DeleteSubscriber(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notification_subscribers WHERE id = $1`, id)
	return err
}

func scanNotifications(rows pgx.Rows) ([]*Notification, error) {
	var items []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Attrs, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
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
