package ranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Board selects which aggregate a leaderboard ranks.
type Board string

const (
	BoardOverall   Board = "overall"
	BoardShiny     Board = "shiny"
	BoardLegendary Board = "legendary"
	BoardMythical  Board = "mythical"
)

// ErrUnknownBoard is returned for a board name outside the known set.
var ErrUnknownBoard = errors.New("unknown ranking board")

// Row is one user's aggregate on a board, before placement.
type Row struct {
	UserID   int64
	Username string
	Total    int
}

// Repository reads leaderboard aggregates.
type Repository interface {
	Rows(ctx context.Context, board Board) ([]Row, error)
}

// PostgresRepository aggregates capture records with SQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a ranking repository over the pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func boardFilter(board Board) (string, error) {
	switch board {
	case BoardOverall:
		return "", nil
	case BoardShiny:
		return " AND p.is_shiny", nil
	case BoardLegendary:
		return " AND p.is_legendary", nil
	case BoardMythical:
		return " AND p.is_mythical", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}
}

func (r *PostgresRepository) Rows(ctx context.Context, board Board) ([]Row, error) {
	filter, err := boardFilter(board)
	if err != nil {
		return nil, err
	}

	query := `SELECT u.id, u.username, COALESCE(SUM(p.count), 0) AS total
        FROM users u
        JOIN pokemon_generated p ON p.user_id = u.id` + filter + `
        GROUP BY u.id, u.username
        HAVING COALESCE(SUM(p.count), 0) > 0
        ORDER BY total DESC, u.username ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ranking rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.UserID, &row.Username, &row.Total); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
