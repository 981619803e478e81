package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoLimit indicates no capture limit row exists for the user.
var ErrNoLimit = errors.New("capture limit not configured")

// Repository persists per-user capture limits.
type Repository interface {
	Get(ctx context.Context, userID int64) (Limit, error)
	Upsert(ctx context.Context, limit Limit) error
}

// PostgresRepository stores capture limits in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed limit repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches the limit row for a user.
func (r *PostgresRepository) Get(ctx context.Context, userID int64) (Limit, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, captures_per_hour, last_capture_time, captures_since_last_reset
        FROM user_capture_limits WHERE user_id = $1`, userID)
	var l Limit
	var lastCapture time.Time
	if err := row.Scan(&l.UserID, &l.CapturesPerHour, &lastCapture, &l.CapturesSinceReset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Limit{}, ErrNoLimit
		}
		return Limit{}, fmt.Errorf("load capture limit: %w", err)
	}
	l.LastCaptureTime = lastCapture.UTC()
	return l, nil
}

// Upsert writes the limit row, replacing any existing state for the user.
func (r *PostgresRepository) Upsert(ctx context.Context, limit Limit) error {
	_, err := r.db.Exec(ctx, `INSERT INTO user_capture_limits
        (user_id, captures_per_hour, last_capture_time, captures_since_last_reset)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            captures_per_hour = EXCLUDED.captures_per_hour,
            last_capture_time = EXCLUDED.last_capture_time,
            captures_since_last_reset = EXCLUDED.captures_since_last_reset`,
		limit.UserID, limit.CapturesPerHour, limit.LastCaptureTime.UTC(), limit.CapturesSinceReset)
	if err != nil {
		return fmt.Errorf("upsert capture limit: %w", err)
	}
	return nil
}
