package repository

import (
	"context"
	"fmt"

	"bucks/database"
	"bucks/models"

	"github.com/google/uuid"
)

// StakeRepository implements the StakeRepository interface. A stake row
// exists exactly while the session it belongs to is in flight; inserting it
// in the same transaction as the wallet debit is what makes a crashed
// process recoverable.
type StakeRepository struct {
	q queryable
}

// NewStakeRepository creates a new stake repository
func NewStakeRepository(db *database.DB) *StakeRepository {
	return &StakeRepository{q: db.Pool}
}

// newStakeRepositoryWithTx creates a new stake repository with a transaction
func newStakeRepositoryWithTx(tx queryable) *StakeRepository {
	return &StakeRepository{q: tx}
}

// Create inserts the stake row
func (r *StakeRepository) Create(ctx context.Context, stake *models.SessionStake) error {
	query := `
		INSERT INTO session_stakes (session_id, user_id, game, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		stake.SessionID,
		stake.UserID,
		stake.Game,
		stake.Amount,
	).Scan(&stake.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create stake for session %s: %w", stake.SessionID, err)
	}
	return nil
}

// Delete removes the stake row as part of settlement
func (r *StakeRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM session_stakes WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete stake for session %s: %w", sessionID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("stake for session %s not found", sessionID)
	}
	return nil
}

// List returns every outstanding stake
func (r *StakeRepository) List(ctx context.Context) ([]*models.SessionStake, error) {
	query := `
		SELECT session_id, user_id, game, amount, created_at
		FROM session_stakes
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	defer rows.Close()

	var stakes []*models.SessionStake
	for rows.Next() {
		var stake models.SessionStake
		err := rows.Scan(
			&stake.SessionID,
			&stake.UserID,
			&stake.Game,
			&stake.Amount,
			&stake.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, &stake)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stakes: %w", err)
	}
	return stakes, nil
}
