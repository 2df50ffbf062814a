package games

import (
	"fmt"

	"bucks/models"
)

const (
	SideHeads = "heads"
	SideTails = "tails"
)

// CoinflipView is the rendered state of a coinflip session
type CoinflipView struct {
	Choice     string
	Landed     string
	Multiplier float64
}

// Coinflip is the single-step call-and-resolve game. The win sample is drawn
// from the odds snapshot taken at session start, so a boost purchased after
// the stake was reserved has no effect.
type Coinflip struct {
	stake      int64
	odds       models.OddsSnapshot
	choice     string
	landed     string
	done       bool
	settlement Settlement
}

func NewCoinflip(stake int64, odds models.OddsSnapshot, opts StartOptions) (*Coinflip, error) {
	switch opts.Choice {
	case SideHeads, SideTails:
	default:
		return nil, fmt.Errorf("%w: side must be %q or %q", ErrBadAction, SideHeads, SideTails)
	}
	return &Coinflip{stake: stake, odds: odds, choice: opts.Choice}, nil
}

func (c *Coinflip) Game() models.Game { return models.GameCoinflip }

func (c *Coinflip) Advance(in Input, rng Rand) (Result, error) {
	if c.done {
		return Result{}, ErrNotRunning
	}
	if in.Action != ActionResolve {
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}

	won := rng.Float64() < c.odds.WinProbability
	c.landed = c.choice
	if !won {
		c.landed = otherSide(c.choice)
	}

	c.done = true
	if won {
		c.settlement = Settlement{
			Kind:    SettlePayout,
			Payout:  payout(c.stake, c.odds.EffectiveMultiplier()),
			Outcome: OutcomeWin,
		}
	} else {
		c.settlement = Settlement{Kind: SettleForfeit, Outcome: OutcomeLose}
	}
	return Result{Done: true, Settlement: c.settlement}, nil
}

func (c *Coinflip) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutImplicit, Action: Input{Action: ActionResolve}}
}

func (c *Coinflip) Snapshot() Snapshot {
	snap := Snapshot{
		Game:  models.GameCoinflip,
		Stake: c.stake,
		Done:  c.done,
		Coinflip: &CoinflipView{
			Choice:     c.choice,
			Landed:     c.landed,
			Multiplier: c.odds.EffectiveMultiplier(),
		},
	}
	if c.done {
		snap.Outcome = c.settlement.Outcome
		snap.Payout = c.settlement.Payout
	} else {
		snap.Actions = []Action{ActionResolve}
	}
	return snap
}

func otherSide(side string) string {
	if side == SideHeads {
		return SideTails
	}
	return SideHeads
}

// DiceView is the rendered state of a dice duel
type DiceView struct {
	PlayerRoll int
	HouseRoll  int
}

// Dice is the opposed-roll duel: both sides roll 1-10 and the player wins
// only on a strictly greater roll, paying double the stake. A tie loses.
type Dice struct {
	stake      int64
	odds       models.OddsSnapshot
	playerRoll int
	houseRoll  int
	done       bool
	settlement Settlement
}

func NewDice(stake int64, odds models.OddsSnapshot) *Dice {
	return &Dice{stake: stake, odds: odds}
}

func (d *Dice) Game() models.Game { return models.GameDice }

func (d *Dice) Advance(in Input, rng Rand) (Result, error) {
	if d.done {
		return Result{}, ErrNotRunning
	}
	if in.Action != ActionResolve {
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}

	d.playerRoll = 1 + rng.Intn(10)
	d.houseRoll = 1 + rng.Intn(10)
	d.done = true

	if d.playerRoll > d.houseRoll {
		d.settlement = Settlement{
			Kind:    SettlePayout,
			Payout:  payout(d.stake, d.odds.EffectiveMultiplier()),
			Outcome: OutcomeWin,
		}
	} else {
		d.settlement = Settlement{Kind: SettleForfeit, Outcome: OutcomeLose}
	}
	return Result{Done: true, Settlement: d.settlement}, nil
}

func (d *Dice) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutImplicit, Action: Input{Action: ActionResolve}}
}

func (d *Dice) Snapshot() Snapshot {
	snap := Snapshot{
		Game:  models.GameDice,
		Stake: d.stake,
		Done:  d.done,
		Dice:  &DiceView{PlayerRoll: d.playerRoll, HouseRoll: d.houseRoll},
	}
	if d.done {
		snap.Outcome = d.settlement.Outcome
		snap.Payout = d.settlement.Payout
	} else {
		snap.Actions = []Action{ActionResolve}
	}
	return snap
}
