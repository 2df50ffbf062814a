package models

import (
	"time"
)

// Category tags a ledger operation for earnings bookkeeping
type Category string

const (
	CategoryOpen        Category = "open"
	CategoryDaily       Category = "daily"
	CategoryDeposit     Category = "deposit"
	CategoryWithdraw    Category = "withdraw"
	CategoryTransferIn  Category = "transfer_in"
	CategoryTransferOut Category = "transfer_out"
	CategoryStake       Category = "stake"
	CategoryPayout      Category = "payout"
	CategoryRefund      Category = "refund"
)

// CountsAsEarnings reports whether the category feeds the lifetime earnings
// accumulator. Refunds and wallet/bank shuffling do not.
func (c Category) CountsAsEarnings() bool {
	switch c {
	case CategoryStake, CategoryPayout, CategoryDaily:
		return true
	}
	return false
}

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID           int64          `db:"id"`
	UserID       int64          `db:"user_id"`
	WalletBefore int64          `db:"wallet_before"`
	WalletAfter  int64          `db:"wallet_after"`
	BankBefore   int64          `db:"bank_before"`
	BankAfter    int64          `db:"bank_after"`
	ChangeAmount int64          `db:"change_amount"`
	Category     Category       `db:"category"`
	Metadata     map[string]any `db:"metadata"`
	CreatedAt    time.Time      `db:"created_at"`
}
