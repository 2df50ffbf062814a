package games

import (
	"fmt"
	"math"

	"bucks/models"
)

const (
	crashBaseChance    = 0.10
	crashChanceCeiling = 0.95
	crashGrowthRate    = 0.56
	crashMaxMultiplier = 100.0
)

// crashChance is the per-tick bust probability at the current multiplier.
// It rises with the multiplier and is capped below certainty.
func crashChance(multiplier float64) float64 {
	return math.Min(crashChanceCeiling, crashBaseChance+math.Pow(multiplier, 2.2)/800)
}

// CrashView is the rendered state of a crash round
type CrashView struct {
	Multiplier float64
	Ticks      int
}

// Crash is the time-driven multiplier game. Each scheduler tick first samples
// a bust at the pre-growth multiplier, then grows the multiplier by a random
// factor. The player may cash out between ticks for stake times the current
// multiplier, or exit and forfeit. Reaching the ceiling cashes out
// automatically.
type Crash struct {
	stake      int64
	odds       models.OddsSnapshot
	multiplier float64
	ticks      int
	done       bool
	settlement Settlement
}

func NewCrash(stake int64, odds models.OddsSnapshot) *Crash {
	return &Crash{stake: stake, odds: odds, multiplier: 1.0}
}

func (c *Crash) Game() models.Game { return models.GameCrash }

func (c *Crash) Tick(rng Rand) (Result, error) {
	if c.done {
		return Result{}, ErrNotRunning
	}
	c.ticks++

	if rng.Float64() < crashChance(c.multiplier) {
		return c.settle(Settlement{Kind: SettleForfeit, Outcome: OutcomeCrashed}), nil
	}

	c.multiplier *= 1 + crashGrowthRate*(0.7+0.6*rng.Float64())
	if c.multiplier >= crashMaxMultiplier {
		c.multiplier = crashMaxMultiplier
		return c.cashOut(), nil
	}
	return Result{}, nil
}

func (c *Crash) Advance(in Input, rng Rand) (Result, error) {
	if c.done {
		return Result{}, ErrNotRunning
	}
	switch in.Action {
	case ActionCashOut:
		return c.cashOut(), nil
	case ActionExit:
		return c.settle(Settlement{Kind: SettleForfeit, Outcome: OutcomeExited}), nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}
}

func (c *Crash) cashOut() Result {
	return c.settle(Settlement{
		Kind:    SettlePayout,
		Payout:  payout(c.stake, c.multiplier*c.odds.Boost),
		Outcome: OutcomeCashedOut,
	})
}

func (c *Crash) settle(s Settlement) Result {
	c.done = true
	c.settlement = s
	return Result{Done: true, Settlement: s}
}

func (c *Crash) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutRefund}
}

func (c *Crash) Snapshot() Snapshot {
	snap := Snapshot{
		Game:  models.GameCrash,
		Stake: c.stake,
		Done:  c.done,
		Crash: &CrashView{Multiplier: c.multiplier, Ticks: c.ticks},
	}
	if c.done {
		snap.Outcome = c.settlement.Outcome
		snap.Payout = c.settlement.Payout
	} else {
		snap.Actions = []Action{ActionCashOut, ActionExit}
	}
	return snap
}
