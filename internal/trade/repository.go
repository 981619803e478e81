package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTradeNotFound is returned when no trade matches the lookup.
var ErrTradeNotFound = errors.New("trade not found")

// Repository persists trade offers.
type Repository interface {
	Get(ctx context.Context, id int64) (Trade, error)
	ListForUser(ctx context.Context, userID int64) ([]Trade, error)
	Insert(ctx context.Context, t Trade) (Trade, error)
	// SettleIfPending moves a pending trade to the given terminal status.
	// It reports false when the trade was already settled.
	SettleIfPending(ctx context.Context, id int64, status Status) (bool, error)
}

// PostgresRepository stores trades in the pokemon_trades table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a trade repository over the pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tradeColumns = `id, initiator_user_id, receiver_user_id,
    initiator_pokemon_id, receiver_pokemon_id, status, created_at`

func scanTrade(row pgx.Row) (Trade, error) {
	var t Trade
	err := row.Scan(&t.ID, &t.InitiatorUserID, &t.ReceiverUserID,
		&t.InitiatorPokemonID, &t.ReceiverPokemonID, &t.Status, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trade{}, ErrTradeNotFound
	}
	if err != nil {
		return Trade{}, fmt.Errorf("scan trade: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Trade, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tradeColumns+` FROM pokemon_trades WHERE id = $1`, id)
	return scanTrade(row)
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]Trade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tradeColumns+` FROM pokemon_trades
         WHERE initiator_user_id = $1 OR receiver_user_id = $1
         ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, t Trade) (Trade, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO pokemon_trades
            (initiator_user_id, receiver_user_id, initiator_pokemon_id,
             receiver_pokemon_id, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		t.InitiatorUserID, t.ReceiverUserID, t.InitiatorPokemonID,
		t.ReceiverPokemonID, t.Status, t.CreatedAt)
	if err := row.Scan(&t.ID); err != nil {
		return Trade{}, fmt.Errorf("insert trade: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) SettleIfPending(ctx context.Context, id int64, status Status) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pokemon_trades SET status = $1
         WHERE id = $2 AND status = $3`,
		status, id, StatusPending)
	if err != nil {
		return false, fmt.Errorf("settle trade: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
