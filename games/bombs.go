package games

import (
	"fmt"
	"math"

	"bucks/models"
)

const (
	bombsGridSize  = 16
	bombsDefault   = 2
	bombsMin       = 1
	bombsMax       = 14
	bombsTierOne   = 15.0
	bombsTierTwo   = 10.0
	bombsTierThree = 7.5
)

// BombsView is the rendered state of a bombs grid. Revealed marks safe tiles
// already flipped; Bombs is populated only once the session is settled.
type BombsView struct {
	BombCount  int
	Revealed   []bool
	Bombs      []bool
	Multiplier float64
}

// Bombs is the tile-reveal game on a 4x4 grid. Each safe reveal raises the
// running multiplier; hitting a bomb forfeits the stake and collecting pays
// stake times the multiplier. Clearing every safe tile collects
// automatically at the top tier.
type Bombs struct {
	stake      int64
	odds       models.OddsSnapshot
	bombs      [bombsGridSize]bool
	revealed   [bombsGridSize]bool
	bombCount  int
	safeShown  int
	multiplier float64
	done       bool
	settlement Settlement
}

func NewBombs(stake int64, odds models.OddsSnapshot, opts StartOptions, rng Rand) (*Bombs, error) {
	count := opts.Bombs
	if count == 0 {
		count = bombsDefault
	}
	if count < bombsMin || count > bombsMax {
		return nil, fmt.Errorf("%w: bomb count must be between %d and %d", ErrBadAction, bombsMin, bombsMax)
	}

	b := &Bombs{stake: stake, odds: odds, bombCount: count, multiplier: 1.0}

	// partial Fisher-Yates to place the bombs
	var tiles [bombsGridSize]int
	for i := range tiles {
		tiles[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + rng.Intn(bombsGridSize-i)
		tiles[i], tiles[j] = tiles[j], tiles[i]
		b.bombs[tiles[i]] = true
	}
	return b, nil
}

func (b *Bombs) Game() models.Game { return models.GameBombs }

func (b *Bombs) safeTotal() int { return bombsGridSize - b.bombCount }

// updateMultiplier recomputes the running multiplier after a safe reveal.
// The last few safe tiles pay fixed tiers; before that the multiplier grows
// with bomb density and reveal progress.
func (b *Bombs) updateMultiplier() {
	switch remaining := b.safeTotal() - b.safeShown; {
	case remaining <= 1:
		b.multiplier = bombsTierOne
	case remaining == 2:
		b.multiplier = bombsTierTwo
	case remaining == 3:
		b.multiplier = bombsTierThree
	default:
		density := float64(b.bombCount) / bombsGridSize
		progress := float64(b.safeShown) / float64(b.safeTotal())
		b.multiplier = math.Round((1+density*5+progress*3)*100) / 100
	}
}

func (b *Bombs) Advance(in Input, rng Rand) (Result, error) {
	if b.done {
		return Result{}, ErrNotRunning
	}
	switch in.Action {
	case ActionReveal:
		if in.Tile < 0 || in.Tile >= bombsGridSize || b.revealed[in.Tile] {
			return Result{}, fmt.Errorf("%w: tile %d", ErrBadTile, in.Tile)
		}
		if b.bombs[in.Tile] {
			return b.settle(Settlement{Kind: SettleForfeit, Outcome: OutcomeDetonated}), nil
		}
		b.revealed[in.Tile] = true
		b.safeShown++
		b.updateMultiplier()
		if b.safeShown == b.safeTotal() {
			return b.collect(OutcomeCleared), nil
		}
		return Result{}, nil
	case ActionCollect:
		return b.collect(OutcomeCollected), nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}
}

func (b *Bombs) collect(outcome Outcome) Result {
	return b.settle(Settlement{
		Kind:    SettlePayout,
		Payout:  payout(b.stake, b.multiplier*b.odds.Boost),
		Outcome: outcome,
	})
}

func (b *Bombs) settle(s Settlement) Result {
	b.done = true
	b.settlement = s
	return Result{Done: true, Settlement: s}
}

func (b *Bombs) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutImplicit, Action: Input{Action: ActionCollect}}
}

func (b *Bombs) Snapshot() Snapshot {
	view := &BombsView{
		BombCount:  b.bombCount,
		Revealed:   append([]bool(nil), b.revealed[:]...),
		Multiplier: b.multiplier,
	}
	snap := Snapshot{
		Game:  models.GameBombs,
		Stake: b.stake,
		Done:  b.done,
		Bombs: view,
	}
	if b.done {
		view.Bombs = append([]bool(nil), b.bombs[:]...)
		snap.Outcome = b.settlement.Outcome
		snap.Payout = b.settlement.Payout
	} else {
		snap.Actions = []Action{ActionReveal, ActionCollect}
	}
	return snap
}
