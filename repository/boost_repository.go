package repository

import (
	"context"
	"fmt"

	"bucks/database"
	"bucks/models"

	"github.com/jackc/pgx/v5"
)

// BoostRepository implements the BoostRepository interface
type BoostRepository struct {
	q queryable
}

// NewBoostRepository creates a new boost repository
func NewBoostRepository(db *database.DB) *BoostRepository {
	return &BoostRepository{q: db.Pool}
}

// newBoostRepositoryWithTx creates a new boost repository with a transaction
func newBoostRepositoryWithTx(tx queryable) *BoostRepository {
	return &BoostRepository{q: tx}
}

// ActiveBoost returns the unexpired boost for (user, game), or nil. With
// multiple grants outstanding the strongest one applies.
func (r *BoostRepository) ActiveBoost(ctx context.Context, userID int64, game models.Game) (*models.Boost, error) {
	query := `
		SELECT id, user_id, game, multiplier, expires_at, created_at
		FROM boosts
		WHERE user_id = $1 AND game = $2 AND expires_at > NOW()
		ORDER BY multiplier DESC
		LIMIT 1
	`

	var boost models.Boost
	err := r.q.QueryRow(ctx, query, userID, game).Scan(
		&boost.ID,
		&boost.UserID,
		&boost.Game,
		&boost.Multiplier,
		&boost.ExpiresAt,
		&boost.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get boost for user %d: %w", userID, err)
	}
	return &boost, nil
}

// Grant inserts a boost row
func (r *BoostRepository) Grant(ctx context.Context, boost *models.Boost) error {
	query := `
		INSERT INTO boosts (user_id, game, multiplier, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		boost.UserID,
		boost.Game,
		boost.Multiplier,
		boost.ExpiresAt,
	).Scan(&boost.ID, &boost.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to grant boost to user %d: %w", boost.UserID, err)
	}
	return nil
}

// DeleteExpired removes boosts past their expiry
func (r *BoostRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `DELETE FROM boosts WHERE expires_at <= NOW()`)
	if err != nil {
		return fmt.Errorf("failed to delete expired boosts: %w", err)
	}
	return nil
}
