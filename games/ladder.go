package games

import (
	"fmt"

	"bucks/models"
)

var (
	ladderMultipliers = []float64{1.25, 1.5, 2, 2.5, 3, 4, 5, 10}
	ladderStepOdds    = []float64{0.85, 0.70, 0.60, 0.50, 0.40, 0.30, 0.20, 0.10}
)

// LadderView is the rendered state of a ladder climb. Step is the number of
// rungs already climbed; Multiplier is zero until the first climb.
type LadderView struct {
	Step        int
	Multiplier  float64
	NextOdds    float64
	Multipliers []float64
}

// Ladder is the climb-or-collect progression. Each climb succeeds with a
// fixed per-rung probability; a failed climb forfeits the stake, collecting
// pays stake times the reached rung's multiplier. Collect is available only
// after the first climb, and reaching the top rung collects automatically.
type Ladder struct {
	stake      int64
	odds       models.OddsSnapshot
	step       int
	done       bool
	settlement Settlement
}

func NewLadder(stake int64, odds models.OddsSnapshot) *Ladder {
	return &Ladder{stake: stake, odds: odds}
}

func (l *Ladder) Game() models.Game { return models.GameLadder }

func (l *Ladder) Advance(in Input, rng Rand) (Result, error) {
	if l.done {
		return Result{}, ErrNotRunning
	}
	switch in.Action {
	case ActionClimb:
		if rng.Float64() >= ladderStepOdds[l.step] {
			return l.settle(Settlement{Kind: SettleForfeit, Outcome: OutcomeCrashed}), nil
		}
		l.step++
		if l.step == len(ladderMultipliers) {
			return l.collect(), nil
		}
		return Result{}, nil
	case ActionCollect:
		if l.step == 0 {
			return Result{}, fmt.Errorf("%w: nothing climbed yet", ErrBadAction)
		}
		return l.collect(), nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}
}

func (l *Ladder) collect() Result {
	return l.settle(Settlement{
		Kind:    SettlePayout,
		Payout:  payout(l.stake, ladderMultipliers[l.step-1]*l.odds.Boost),
		Outcome: OutcomeCollected,
	})
}

func (l *Ladder) settle(s Settlement) Result {
	l.done = true
	l.settlement = s
	return Result{Done: true, Settlement: s}
}

func (l *Ladder) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutRefund}
}

func (l *Ladder) Snapshot() Snapshot {
	view := &LadderView{
		Step:        l.step,
		Multipliers: ladderMultipliers,
	}
	if l.step > 0 {
		view.Multiplier = ladderMultipliers[l.step-1]
	}
	if l.step < len(ladderStepOdds) {
		view.NextOdds = ladderStepOdds[l.step]
	}
	snap := Snapshot{
		Game:   models.GameLadder,
		Stake:  l.stake,
		Done:   l.done,
		Ladder: view,
	}
	if l.done {
		snap.Outcome = l.settlement.Outcome
		snap.Payout = l.settlement.Payout
	} else if l.step == 0 {
		snap.Actions = []Action{ActionClimb}
	} else {
		snap.Actions = []Action{ActionClimb, ActionCollect}
	}
	return snap
}
