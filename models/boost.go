package models

import (
	"time"
)

// Boost is an externally granted, time-boxed winnings modifier. The core
// treats it as an opaque multiplier input; granting and pricing live in the
// shop collaborator.
type Boost struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Game       Game      `db:"game"`
	Multiplier float64   `db:"multiplier"`
	ExpiresAt  time.Time `db:"expires_at"`
	CreatedAt  time.Time `db:"created_at"`
}

// Active reports whether the boost applies at the given instant.
func (b *Boost) Active(now time.Time) bool {
	return now.Before(b.ExpiresAt)
}
