package games

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bucks/models"
)

// New builds a fresh machine for the given game family
func New(game models.Game, stake int64, odds models.OddsSnapshot, opts StartOptions, rng Rand) (Machine, error) {
	switch game {
	case models.GameCoinflip:
		return NewCoinflip(stake, odds, opts)
	case models.GameDice:
		return NewDice(stake, odds), nil
	case models.GameBlackjack:
		return NewBlackjack(stake, odds, rng), nil
	case models.GameCrash:
		return NewCrash(stake, odds), nil
	case models.GameLadder:
		return NewLadder(stake, odds), nil
	case models.GameBombs:
		return NewBombs(stake, odds, opts, rng)
	case models.GameScratch:
		return NewScratch(stake, odds, rng), nil
	default:
		return nil, fmt.Errorf("unknown game %q", game)
	}
}

// lockedRand is the production Rand, safe for use from the tick scheduler
// and interaction handlers at once
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a time-seeded Rand safe for concurrent use
func NewRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}
