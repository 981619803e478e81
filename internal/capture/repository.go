package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRecordNotFound indicates no capture record matches the lookup.
var ErrRecordNotFound = errors.New("capture record not found")

// Repository persists captured pokemon records.
type Repository interface {
	Get(ctx context.Context, id int64) (Record, error)
	FindByUserAndSpecies(ctx context.Context, userID int64, species string) (Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, rec Record) error
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
}

// PostgresRepository stores capture records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed capture repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches a record by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, pokemon_name, pokemon_image_url, is_shiny, is_legendary, is_mythical, count
        FROM pokemon_generated WHERE id = $1`, id)
	return scanRecord(row)
}

// FindByUserAndSpecies fetches a user's record for one species.
func (r *PostgresRepository) FindByUserAndSpecies(ctx context.Context, userID int64, species string) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, pokemon_name, pokemon_image_url, is_shiny, is_legendary, is_mythical, count
        FROM pokemon_generated WHERE user_id = $1 AND pokemon_name = $2`, userID, species)
	return scanRecord(row)
}

// Insert creates a new record and returns it with its assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO pokemon_generated
        (user_id, pokemon_name, pokemon_image_url, is_shiny, is_legendary, is_mythical, count)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`,
		rec.UserID, rec.Species, rec.ImageURL, rec.Shiny, rec.Legendary, rec.Mythical, rec.Count)
	if err := row.Scan(&rec.ID); err != nil {
		return Record{}, fmt.Errorf("insert capture record: %w", err)
	}
	return rec, nil
}

// Update writes a record's count, shiny flag, and image.
func (r *PostgresRepository) Update(ctx context.Context, rec Record) error {
	cmd, err := r.db.Exec(ctx, `UPDATE pokemon_generated
        SET count = $1, is_shiny = $2, pokemon_image_url = $3
        WHERE id = $4`, rec.Count, rec.Shiny, rec.ImageURL, rec.ID)
	if err != nil {
		return fmt.Errorf("update capture record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListByUser returns all of a user's records ordered by species name.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, pokemon_name, pokemon_image_url, is_shiny, is_legendary, is_mythical, count
        FROM pokemon_generated WHERE user_id = $1 ORDER BY pokemon_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list capture records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Species, &rec.ImageURL, &rec.Shiny, &rec.Legendary, &rec.Mythical, &rec.Count); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Species, &rec.ImageURL, &rec.Shiny, &rec.Legendary, &rec.Mythical, &rec.Count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return rec, nil
}
