package companion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoCompanion indicates the user has no companion record.
var ErrNoCompanion = errors.New("companion not found")

// Repository persists companions.
type Repository interface {
	GetByUser(ctx context.Context, userID int64) (Companion, error)
	Update(ctx context.Context, c Companion) error
}

// PostgresRepository stores companions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed companion repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUser fetches a user's companion.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) (Companion, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, companion_name, COALESCE(companion_image, ''), evolution_stage, capture_count
        FROM companions WHERE user_id = $1`, userID)
	var c Companion
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.ImageURL, &c.EvolutionStage, &c.CaptureCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Companion{}, ErrNoCompanion
		}
		return Companion{}, fmt.Errorf("load companion: %w", err)
	}
	return c, nil
}

// Update writes the companion's mutable fields.
func (r *PostgresRepository) Update(ctx context.Context, c Companion) error {
	cmd, err := r.db.Exec(ctx, `UPDATE companions
        SET companion_name = $1, evolution_stage = $2, capture_count = $3
        WHERE id = $4`, c.Name, c.EvolutionStage, c.CaptureCount, c.ID)
	if err != nil {
		return fmt.Errorf("update companion: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoCompanion
	}
	return nil
}
