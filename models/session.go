package models

import (
	"time"

	"github.com/google/uuid"
)

// Game identifies a wager game family. A user holds at most one active
// session per family.
type Game string

const (
	GameCoinflip  Game = "coinflip"
	GameDice      Game = "dice"
	GameBlackjack Game = "blackjack"
	GameCrash     Game = "crash"
	GameLadder    Game = "ladder"
	GameBombs     Game = "bombs"
	GameScratch   Game = "scratch"
)

// Valid reports whether g names a known game family.
func (g Game) Valid() bool {
	switch g {
	case GameCoinflip, GameDice, GameBlackjack, GameCrash, GameLadder, GameBombs, GameScratch:
		return true
	}
	return false
}

// OddsSnapshot is the per-session odds capture. It is taken once at session
// creation; later odds or boost changes never affect a running session.
type OddsSnapshot struct {
	WinProbability float64
	Multiplier     float64
	Boost          float64
}

// EffectiveMultiplier applies the boost factor to the base payout multiplier.
func (o OddsSnapshot) EffectiveMultiplier() float64 {
	if o.Boost > 0 {
		return o.Multiplier * o.Boost
	}
	return o.Multiplier
}

// SessionStake is the persisted record of a stake reserved for an in-flight
// session. The row exists from the stake debit until settlement, so a crashed
// process can refund what was never resolved.
type SessionStake struct {
	SessionID uuid.UUID `db:"session_id"`
	UserID    int64     `db:"user_id"`
	Game      Game      `db:"game"`
	Amount    int64     `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}
