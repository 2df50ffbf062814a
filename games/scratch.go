package games

import (
	"fmt"

	"bucks/models"
)

const scratchCells = 9

// Symbol is one scratch card face
type Symbol string

const (
	SymbolDiamond Symbol = "diamond"
	SymbolMoney   Symbol = "money"
	SymbolDice    Symbol = "dice"
	SymbolTarget  Symbol = "target"
	SymbolClover  Symbol = "clover"
)

var scratchSymbols = []Symbol{SymbolDiamond, SymbolMoney, SymbolDice, SymbolTarget, SymbolClover}

// SymbolMultiplier is the payout factor for matching three of a symbol
var SymbolMultiplier = map[Symbol]float64{
	SymbolDiamond: 10,
	SymbolMoney:   5,
	SymbolDice:    3,
	SymbolTarget:  2,
	SymbolClover:  1.5,
}

// ScratchView is the rendered state of a scratch card. Grid entries are
// empty strings for cells not yet scratched.
type ScratchView struct {
	Grid     []Symbol
	Revealed []bool
	Left     int
}

// Scratch is the pre-determined scratch card. Whether the card wins is
// sampled once at creation; a winning card carries exactly three of one
// symbol, a losing card is laid out so no symbol ever reaches three.
// Scratching the third match pays that symbol's multiplier; scratching all
// nine cells without one forfeits the stake.
type Scratch struct {
	stake      int64
	odds       models.OddsSnapshot
	grid       [scratchCells]Symbol
	revealed   [scratchCells]bool
	shown      int
	done       bool
	settlement Settlement
}

func NewScratch(stake int64, odds models.OddsSnapshot, rng Rand) *Scratch {
	s := &Scratch{stake: stake, odds: odds}
	if rng.Float64() < s.odds.WinProbability {
		s.layoutWinning(rng)
	} else {
		s.layoutLosing(rng)
	}
	return s
}

// layoutWinning places exactly three of a randomly chosen symbol and fills
// the rest from the other symbols, each capped at two occurrences
func (s *Scratch) layoutWinning(rng Rand) {
	winner := scratchSymbols[rng.Intn(len(scratchSymbols))]

	var cells [scratchCells]int
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < 3; i++ {
		j := i + rng.Intn(scratchCells-i)
		cells[i], cells[j] = cells[j], cells[i]
		s.grid[cells[i]] = winner
	}

	counts := map[Symbol]int{}
	for i := range s.grid {
		if s.grid[i] != "" {
			continue
		}
		s.grid[i] = s.drawFiller(rng, counts, winner)
		counts[s.grid[i]]++
	}
}

// layoutLosing fills all nine cells with every symbol capped at two, so no
// three of a kind can appear
func (s *Scratch) layoutLosing(rng Rand) {
	counts := map[Symbol]int{}
	for i := range s.grid {
		s.grid[i] = s.drawFiller(rng, counts, "")
		counts[s.grid[i]]++
	}
}

// drawFiller picks a symbol with fewer than two placements so far, skipping
// the excluded one
func (s *Scratch) drawFiller(rng Rand, counts map[Symbol]int, exclude Symbol) Symbol {
	available := make([]Symbol, 0, len(scratchSymbols))
	for _, sym := range scratchSymbols {
		if sym != exclude && counts[sym] < 2 {
			available = append(available, sym)
		}
	}
	return available[rng.Intn(len(available))]
}

func (s *Scratch) Game() models.Game { return models.GameScratch }

func (s *Scratch) Advance(in Input, rng Rand) (Result, error) {
	if s.done {
		return Result{}, ErrNotRunning
	}
	if in.Action != ActionReveal {
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}
	if in.Tile < 0 || in.Tile >= scratchCells || s.revealed[in.Tile] {
		return Result{}, fmt.Errorf("%w: cell %d", ErrBadTile, in.Tile)
	}

	s.revealed[in.Tile] = true
	s.shown++

	if sym, ok := s.revealedTriple(); ok {
		return s.settle(Settlement{
			Kind:    SettlePayout,
			Payout:  payout(s.stake, SymbolMultiplier[sym]*s.odds.Boost),
			Outcome: OutcomeWin,
		}), nil
	}
	if s.shown == scratchCells {
		return s.settle(Settlement{Kind: SettleForfeit, Outcome: OutcomeLose}), nil
	}
	return Result{}, nil
}

// revealedTriple reports whether three of one symbol are scratched
func (s *Scratch) revealedTriple() (Symbol, bool) {
	counts := map[Symbol]int{}
	for i, sym := range s.grid {
		if s.revealed[i] {
			counts[sym]++
			if counts[sym] == 3 {
				return sym, true
			}
		}
	}
	return "", false
}

func (s *Scratch) settle(settlement Settlement) Result {
	s.done = true
	s.settlement = settlement
	return Result{Done: true, Settlement: settlement}
}

func (s *Scratch) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutForfeit}
}

func (s *Scratch) Snapshot() Snapshot {
	view := &ScratchView{
		Grid:     make([]Symbol, scratchCells),
		Revealed: append([]bool(nil), s.revealed[:]...),
		Left:     scratchCells - s.shown,
	}
	for i := range s.grid {
		if s.revealed[i] || s.done {
			view.Grid[i] = s.grid[i]
		}
	}
	snap := Snapshot{
		Game:    models.GameScratch,
		Stake:   s.stake,
		Done:    s.done,
		Scratch: view,
	}
	if s.done {
		snap.Outcome = s.settlement.Outcome
		snap.Payout = s.settlement.Payout
	} else {
		snap.Actions = []Action{ActionReveal}
	}
	return snap
}
