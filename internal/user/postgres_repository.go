package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquagrid/aquagrid/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository backed
// by JSONB document columns. Contacts carry a unique index on
// attrs->>'email' and preferences a unique index on user_id.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a user by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Attrs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List retrieves a page of users ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, limit := normalizePage(opts)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, attrs, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Attrs, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total}, nil
}

// FindByContact retrieves the user referencing the given contact.
func (r *PostgresRepository) FindByContact(ctx context.Context, contactID string) (*User, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM users
		WHERE attrs->>'contact' = $1
	`

	var u User
	err := r.pool.QueryRow(ctx, query, contactID).Scan(&u.ID, &u.Attrs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, u.ID, u.Attrs, u.CreatedAt, u.UpdatedAt)
	return database.MapError(err)
}

// Update updates an existing user.
func (r *PostgresRepository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, u.ID, u.Attrs, u.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete deletes a user. Referenced records are left untouched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// GetContact retrieves a contact by ID.
func (r *PostgresRepository) GetContact(ctx context.Context, id string) (*Contact, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM user_contacts
		WHERE id = $1
	`

	var c Contact
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Attrs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindContactByEmail retrieves a contact by its unique email.
func (r *PostgresRepository) FindContactByEmail(ctx context.Context, email string) (*Contact, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM user_contacts
		WHERE attrs->>'email' = $1
	`

	var c Contact
	err := r.pool.QueryRow(ctx, query, email).Scan(&c.ID, &c.Attrs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateContact creates a new contact.
func (r *PostgresRepository) CreateContact(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO user_contacts (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Attrs, c.CreatedAt, c.UpdatedAt)
	return database.MapError(err)
}

// UpdateContact updates an existing contact.
func (r *PostgresRepository) UpdateContact(ctx context.Context, c *Contact) error {
	query := `
		UPDATE user_contacts SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, c.ID, c.Attrs, c.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// GetAddress retrieves an address by ID.
func (r *PostgresRepository) GetAddress(ctx context.Context, id string) (*Address, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM user_addresses
		WHERE id = $1
	`

	var a Address
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Attrs, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateAddress creates a new address.
func (r *PostgresRepository) CreateAddress(ctx context.Context, a *Address) error {
	query := `
		INSERT INTO user_addresses (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, a.ID, a.Attrs, a.CreatedAt, a.UpdatedAt)
	return database.MapError(err)
}

// UpdateAddress updates an existing address.
func (r *PostgresRepository) UpdateAddress(ctx context.Context, a *Address) error {
	query := `
		UPDATE user_addresses SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, a.ID, a.Attrs, a.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// GetPassword retrieves a password record by ID.
func (r *PostgresRepository) GetPassword(ctx context.Context, id string) (*Password, error) {
	query := `
		SELECT id, attrs, created_at, updated_at
		FROM user_passwords
		WHERE id = $1
	`

	var p Password
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Attrs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPasswordNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreatePassword creates a new password record.
func (r *PostgresRepository) CreatePassword(ctx context.Context, p *Password) error {
	query := `
		INSERT INTO user_passwords (id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Attrs, p.CreatedAt, p.UpdatedAt)
	return database.MapError(err)
}

// UpdatePassword updates an existing password record.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, p *Password) error {
	query := `
		UPDATE user_passwords SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, p.ID, p.Attrs, p.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrPasswordNotFound
	}
	return nil
}

// GetPreferences retrieves a preferences record by ID.
func (r *PostgresRepository) GetPreferences(ctx context.Context, id string) (*Preferences, error) {
	query := `
		SELECT id, user_id, attrs, created_at, updated_at
		FROM user_preferences
		WHERE id = $1
	`

	var p Preferences
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Attrs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetPreferencesByUser retrieves the preferences record for a user.
func (r *PostgresRepository) GetPreferencesByUser(ctx context.Context, userID string) (*Preferences, error) {
	query := `
		SELECT id, user_id, attrs, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var p Preferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Attrs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreatePreferences creates a new preferences record.
func (r *PostgresRepository) CreatePreferences(ctx context.Context, p *Preferences) error {
	query := `
		INSERT INTO user_preferences (id, user_id, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, p.ID, p.UserID, p.Attrs, p.CreatedAt, p.UpdatedAt)
	return database.MapError(err)
}

// UpdatePreferences updates an existing preferences record.
func (r *PostgresRepository) UpdatePreferences(ctx context.Context, p *Preferences) error {
	query := `
		UPDATE user_preferences SET attrs = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, p.ID, p.Attrs, p.UpdatedAt)
	if err != nil {
		return database.MapError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrPreferencesNotFound
	}
	return nil
}

// DeletePreferences deletes a preferences record by ID.
func (r *PostgresRepository) DeletePreferences(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_preferences WHERE id = $1`, id)
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
