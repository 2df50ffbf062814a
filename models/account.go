package models

import (
	"time"
)

// Account represents a user's two-part balance: the liquid wallet that
// wagers are staked from, and the protected bank.
type Account struct {
	UserID      int64      `db:"user_id"`
	Username    string     `db:"username"`
	Wallet      int64      `db:"wallet"`
	Bank        int64      `db:"bank"`
	Earnings    int64      `db:"earnings"`
	Wins        int64      `db:"wins"`
	TotalWagers int64      `db:"total_wagers"`
	LastDaily   *time.Time `db:"last_daily"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Net returns the combined wallet and bank balance.
func (a *Account) Net() int64 {
	return a.Wallet + a.Bank
}

// TransferResult represents the outcome of a transfer (returned to the caller)
type TransferResult struct {
	Amount        int64
	RecipientName string
	NewWallet     int64
}
