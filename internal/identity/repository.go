package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists users and verification codes.
type Repository interface {
	FindByID(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	PasswordHash(ctx context.Context, username string) ([]byte, error)
	// ConsumeCode atomically marks an unused, unexpired code as used and
	// returns the associated user id. The single conditional update is the
	// authority: a retry after a successful consumption fails.
	ConsumeCode(ctx context.Context, code string, now time.Time) (int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, COALESCE(phone_number, ''), is_admin, created_at
        FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByUsername fetches a user by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, COALESCE(phone_number, ''), is_admin, created_at
        FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// List returns all users ordered by username.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, COALESCE(phone_number, ''), is_admin, created_at
        FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.Username, &u.Phone, &u.IsAdmin, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt = createdAt.UTC()
		users = append(users, u)
	}
	return users, rows.Err()
}

// PasswordHash returns the stored credential hash for a username.
func (r *PostgresRepository) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	row := r.db.QueryRow(ctx, `SELECT password_hash FROM users
        WHERE username = $1 AND password_hash IS NOT NULL`, username)
	var hash []byte
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load credential hash: %w", err)
	}
	return hash, nil
}

// ConsumeCode flips the used flag on a matching live code and yields its user.
func (r *PostgresRepository) ConsumeCode(ctx context.Context, code string, now time.Time) (int64, error) {
	row := r.db.QueryRow(ctx, `UPDATE verification_codes SET used = true
        WHERE code = $1 AND used = false AND expires_at > $2
        RETURNING user_id`, code, now.UTC())
	var userID int64
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInvalidOrExpiredCode
		}
		return 0, fmt.Errorf("consume code: %w", err)
	}
	return userID, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var createdAt time.Time
	if err := row.Scan(&u.ID, &u.Username, &u.Phone, &u.IsAdmin, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
