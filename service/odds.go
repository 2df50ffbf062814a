package service

import (
	"context"
	"fmt"

	"bucks/games"
	"bucks/models"
)

// Base odds per game family. Crash, ladder and bombs derive their payouts
// from machine state, so their base multiplier is 1; scratch only consumes
// the win probability.
const (
	coinflipWinChance     = 0.4
	coinflipMinMultiplier = 1.5
	coinflipMaxMultiplier = 2.5
	// chance of strictly winning an opposed 1-10 roll
	diceWinChance       = 0.45
	diceMultiplier      = 2.0
	blackjackMultiplier = 2.0
	scratchWinChance    = 0.2
)

type oddsService struct {
	boosts BoostRepository
	rng    games.Rand
}

// NewOddsService creates the odds table service. Boosts come from the
// repository so externally granted modifiers apply without a restart.
func NewOddsService(boosts BoostRepository, rng games.Rand) OddsService {
	return &oddsService{boosts: boosts, rng: rng}
}

// Snapshot captures the odds for one new session. The coinflip multiplier
// is drawn here, so the quoted figure is exactly what a win pays.
func (s *oddsService) Snapshot(ctx context.Context, userID int64, game models.Game) (models.OddsSnapshot, error) {
	snapshot := models.OddsSnapshot{WinProbability: 1, Multiplier: 1, Boost: 1}

	switch game {
	case models.GameCoinflip:
		snapshot.WinProbability = coinflipWinChance
		snapshot.Multiplier = coinflipMinMultiplier +
			s.rng.Float64()*(coinflipMaxMultiplier-coinflipMinMultiplier)
	case models.GameDice:
		snapshot.WinProbability = diceWinChance
		snapshot.Multiplier = diceMultiplier
	case models.GameBlackjack:
		snapshot.Multiplier = blackjackMultiplier
	case models.GameScratch:
		snapshot.WinProbability = scratchWinChance
	case models.GameCrash, models.GameLadder, models.GameBombs:
		// multiplier comes from machine state
	default:
		return models.OddsSnapshot{}, fmt.Errorf("unknown game %q", game)
	}

	boost, err := s.boosts.ActiveBoost(ctx, userID, game)
	if err != nil {
		return models.OddsSnapshot{}, fmt.Errorf("failed to look up boost: %w", err)
	}
	if boost != nil {
		snapshot.Boost = boost.Multiplier
	}
	return snapshot, nil
}
