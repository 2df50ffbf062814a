package service

import (
	"context"
	"time"

	"bucks/events"
	"bucks/games"
	"bucks/models"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access.
// Every mutating method is a single atomic statement; the conditional
// variants fail with ErrInsufficientFunds instead of going negative.
type AccountRepository interface {
	// GetByUserID retrieves an account, or nil when none exists
	GetByUserID(ctx context.Context, userID int64) (*models.Account, error)

	// Create opens a new account with the starting wallet balance
	Create(ctx context.Context, userID int64, username string, startingWallet int64) (*models.Account, error)

	// AddWallet credits the wallet; when earn is true the lifetime earnings
	// accumulator moves by the same amount
	AddWallet(ctx context.Context, userID int64, amount int64, earn bool) error

	// DeductWallet conditionally debits the wallet, failing with
	// ErrInsufficientFunds if the wallet holds less than amount
	DeductWallet(ctx context.Context, userID int64, amount int64, earn bool) error

	// Deposit moves amount from wallet to bank, conditional on the wallet
	Deposit(ctx context.Context, userID int64, amount int64) error

	// Withdraw moves amount from bank to wallet, conditional on the bank
	Withdraw(ctx context.Context, userID int64, amount int64) error

	// RecordOutcome bumps the win/total wager counters after a settlement
	RecordOutcome(ctx context.Context, userID int64, won bool) error

	// ClaimDaily credits the daily reward if the last claim is older than
	// the interval; returns false without mutation when it is not due
	ClaimDaily(ctx context.Context, userID int64, amount int64, interval time.Duration) (bool, error)

	// Top returns the richest accounts by combined wallet and bank
	Top(ctx context.Context, limit int) ([]*models.Account, error)
}

// BalanceHistoryRepository defines the interface for ledger audit records
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// StakeRepository tracks the reserved stake of every in-flight session
type StakeRepository interface {
	// Create inserts the stake row in the same transaction as the debit
	Create(ctx context.Context, stake *models.SessionStake) error

	// Delete removes the stake row as part of settlement
	Delete(ctx context.Context, sessionID uuid.UUID) error

	// List returns every outstanding stake (used by the startup sweep)
	List(ctx context.Context) ([]*models.SessionStake, error)
}

// BoostRepository reads externally granted winnings modifiers
type BoostRepository interface {
	// ActiveBoost returns the unexpired boost for (user, game), or nil
	ActiveBoost(ctx context.Context, userID int64, game models.Game) (*models.Boost, error)

	// Grant inserts a boost row; called by the shop collaborator
	Grant(ctx context.Context, boost *models.Boost) error

	// DeleteExpired removes boosts past their expiry
	DeleteExpired(ctx context.Context) error
}

// EventPublisher publishes events, coupled to the unit of work lifecycle
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork combines repository access with transaction management
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	StakeRepository() StakeRepository
	BoostRepository() BoostRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates new UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// LedgerService owns all balance mutation outside of wager settlement
type LedgerService interface {
	// OpenAccount creates an account with the starting balance; fails if
	// one already exists
	OpenAccount(ctx context.Context, userID int64, username string) (*models.Account, error)

	// Balance returns the account, or ErrNoAccount
	Balance(ctx context.Context, userID int64) (*models.Account, error)

	// Deposit moves wallet funds into the bank. The amount string accepts
	// literals, shorthand suffixes and all/half/quarter against the wallet.
	Deposit(ctx context.Context, userID int64, amount string) (int64, error)

	// Withdraw moves bank funds into the wallet; symbolic amounts resolve
	// against the bank
	Withdraw(ctx context.Context, userID int64, amount string) (int64, error)

	// Transfer moves wallet funds between two users atomically
	Transfer(ctx context.Context, fromID, toID int64, amount string) (*models.TransferResult, error)

	// Daily credits the daily reward at most once per 24 hours
	Daily(ctx context.Context, userID int64) (int64, error)

	// Top returns the leaderboard
	Top(ctx context.Context, limit int) ([]*models.Account, error)
}

// SessionService is the game session controller: it creates, tracks and
// tears down at most one wager session per (user, game family)
type SessionService interface {
	// Start reserves the stake and instantiates the game's state machine.
	// The stake string accepts the same forms as ledger amounts; symbolic
	// amounts clamp to the max stake, explicit over-limit input is rejected.
	Start(ctx context.Context, userID int64, game models.Game, stake string, opts games.StartOptions) (*games.Snapshot, error)

	// Input forwards a player action to the owned state machine
	Input(ctx context.Context, sessionID uuid.UUID, in games.Input) (*games.Snapshot, error)

	// Tick advances a time-driven session by one step
	Tick(ctx context.Context, sessionID uuid.UUID) (*games.Snapshot, error)

	// Expire applies the current state's declared timeout policy
	Expire(ctx context.Context, sessionID uuid.UUID) error

	// ActiveSession returns the running session snapshot for (user, game),
	// or nil when there is none
	ActiveSession(userID int64, game models.Game) *games.Snapshot

	// RefundOrphanedStakes refunds stakes left behind by a previous
	// process; called once at startup, never while sessions are live
	RefundOrphanedStakes(ctx context.Context) (int, error)

	// Close expires every live session; called on shutdown
	Close(ctx context.Context) error
}

// OddsService captures per-session odds snapshots
type OddsService interface {
	// Snapshot returns the odds for one new session: base probability and
	// payout multiplier merged with any active boost for the user
	Snapshot(ctx context.Context, userID int64, game models.Game) (models.OddsSnapshot, error)
}
