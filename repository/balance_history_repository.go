package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bucks/database"
	"bucks/models"
)

// BalanceHistoryRepository implements the BalanceHistoryRepository interface
type BalanceHistoryRepository struct {
	q queryable
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *database.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool}
}

// newBalanceHistoryRepositoryWithTx creates a new balance history repository with a transaction
func newBalanceHistoryRepositoryWithTx(tx queryable) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	metadataJSON, err := json.Marshal(history.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal history metadata: %w", err)
	}

	query := `
		INSERT INTO balance_history
		(user_id, wallet_before, wallet_after, bank_before, bank_after, change_amount, category, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		history.UserID,
		history.WalletBefore,
		history.WalletAfter,
		history.BankBefore,
		history.BankAfter,
		history.ChangeAmount,
		history.Category,
		metadataJSON,
	).Scan(&history.ID, &history.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record balance history for user %d: %w", history.UserID, err)
	}
	return nil
}

// GetByUser returns the most recent balance history entries for a user
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	query := `
		SELECT id, user_id, wallet_before, wallet_after, bank_before, bank_after,
		       change_amount, category, metadata, created_at
		FROM balance_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.BalanceHistory
	for rows.Next() {
		var entry models.BalanceHistory
		var metadataJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.WalletBefore,
			&entry.WalletAfter,
			&entry.BankBefore,
			&entry.BankAfter,
			&entry.ChangeAmount,
			&entry.Category,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal history metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}
	return entries, nil
}
