package repository

import (
	"context"
	"fmt"
	"time"

	"bucks/database"
	"bucks/models"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `user_id, username, wallet, bank, earnings, wins, total_wagers, last_daily, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.UserID,
		&account.Username,
		&account.Wallet,
		&account.Bank,
		&account.Earnings,
		&account.Wins,
		&account.TotalWagers,
		&account.LastDaily,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByUserID retrieves an account by user ID, or nil when none exists
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE user_id = $1`, accountColumns)

	account, err := scanAccount(r.q.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for user %d: %w", userID, err)
	}
	return account, nil
}

// Create opens a new account with the starting wallet balance
func (r *AccountRepository) Create(ctx context.Context, userID int64, username string, startingWallet int64) (*models.Account, error) {
	query := fmt.Sprintf(`
		INSERT INTO accounts (user_id, username, wallet)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, accountColumns)

	account, err := scanAccount(r.q.QueryRow(ctx, query, userID, username, startingWallet))
	if err != nil {
		return nil, fmt.Errorf("failed to create account for user %d: %w", userID, err)
	}
	return account, nil
}

// AddWallet credits the wallet atomically. When earn is true the lifetime
// earnings accumulator moves by the same amount.
func (r *AccountRepository) AddWallet(ctx context.Context, userID int64, amount int64, earn bool) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET wallet = wallet + $1,
		    earnings = earnings + CASE WHEN $2 THEN $1 ELSE 0 END,
		    updated_at = NOW()
		WHERE user_id = $3
	`

	result, err := r.q.Exec(ctx, query, amount, earn, userID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}

// DeductWallet debits the wallet atomically, failing if the wallet holds
// less than amount. The guard lives in the WHERE clause so two concurrent
// debits can never both succeed against the same funds.
func (r *AccountRepository) DeductWallet(ctx context.Context, userID int64, amount int64, earn bool) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET wallet = wallet - $1,
		    earnings = earnings - CASE WHEN $2 THEN $1 ELSE 0 END,
		    updated_at = NOW()
		WHERE user_id = $3 AND wallet >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, earn, userID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		account, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if account == nil {
			return models.ErrAccountNotFound
		}
		return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, account.Wallet, amount)
	}
	return nil
}

// Deposit moves amount from wallet to bank, conditional on the wallet
func (r *AccountRepository) Deposit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET wallet = wallet - $1, bank = bank + $1, updated_at = NOW()
		WHERE user_id = $2 AND wallet >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to deposit for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return r.shortfall(ctx, userID, amount, true)
	}
	return nil
}

// Withdraw moves amount from bank to wallet, conditional on the bank
func (r *AccountRepository) Withdraw(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET bank = bank - $1, wallet = wallet + $1, updated_at = NOW()
		WHERE user_id = $2 AND bank >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to withdraw for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return r.shortfall(ctx, userID, amount, false)
	}
	return nil
}

// shortfall distinguishes a missing account from insufficient funds after a
// conditional update affected no rows
func (r *AccountRepository) shortfall(ctx context.Context, userID int64, amount int64, wallet bool) error {
	account, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if account == nil {
		return models.ErrAccountNotFound
	}
	have := account.Bank
	if wallet {
		have = account.Wallet
	}
	return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientFunds, have, amount)
}

// RecordOutcome bumps the win and total wager counters after a settlement
func (r *AccountRepository) RecordOutcome(ctx context.Context, userID int64, won bool) error {
	query := `
		UPDATE accounts
		SET total_wagers = total_wagers + 1,
		    wins = wins + CASE WHEN $1 THEN 1 ELSE 0 END,
		    updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, won, userID)
	if err != nil {
		return fmt.Errorf("failed to record outcome for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}

// ClaimDaily credits the daily reward if the last claim is older than the
// interval. The due check rides in the WHERE clause, so concurrent claims
// resolve to exactly one credit.
func (r *AccountRepository) ClaimDaily(ctx context.Context, userID int64, amount int64, interval time.Duration) (bool, error) {
	query := `
		UPDATE accounts
		SET wallet = wallet + $1,
		    earnings = earnings + $1,
		    last_daily = NOW(),
		    updated_at = NOW()
		WHERE user_id = $2
		  AND (last_daily IS NULL OR last_daily <= NOW() - make_interval(secs => $3))
	`

	result, err := r.q.Exec(ctx, query, amount, userID, interval.Seconds())
	if err != nil {
		return false, fmt.Errorf("failed to claim daily for user %d: %w", userID, err)
	}
	return result.RowsAffected() > 0, nil
}

// Top returns the richest accounts by combined wallet and bank
func (r *AccountRepository) Top(ctx context.Context, limit int) ([]*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		ORDER BY wallet + bank DESC, user_id
		LIMIT $1
	`, accountColumns)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
