package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// statsRowID is the single row the win counter lives in.
const statsRowID = 1

// WinsRepository persists the cumulative win counter.
type WinsRepository struct {
	pool *pgxpool.Pool
}

// NewWinsRepository creates a new WinsRepository with the provided pool.
func NewWinsRepository(pool *pgxpool.Pool) *WinsRepository {
	return &WinsRepository{pool: pool}
}

// Load returns the persisted win counter, zero if none was ever written.
func (r *WinsRepository) Load(ctx context.Context) (int, error) {
	query := `SELECT wins FROM game_stats WHERE id = $1`

	var wins int
	err := r.pool.QueryRow(ctx, query, statsRowID).Scan(&wins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("load wins: %w", err)
	}

	return wins, nil
}

// Save upserts the win counter.
func (r *WinsRepository) Save(ctx context.Context, wins int) error {
	query := `
		INSERT INTO game_stats (id, wins)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET wins = EXCLUDED.wins
	`

	if _, err := r.pool.Exec(ctx, query, statsRowID, wins); err != nil {
		return fmt.Errorf("save wins: %w", err)
	}
	return nil
}
