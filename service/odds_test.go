package service

import (
	"context"
	"testing"

	"bucks/models"
	"bucks/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

func TestOddsServiceCoinflipQuote(t *testing.T) {
	ctx := context.Background()
	boosts := new(MockBoostRepository)
	boosts.On("ActiveBoost", ctx, int64(1), models.GameCoinflip).Return(nil, nil)

	// the multiplier is drawn at snapshot time from [1.5, 2.5)
	svc := NewOddsService(boosts, fixedRand{f: 0.5})

	snap, err := svc.Snapshot(ctx, 1, models.GameCoinflip)
	require.NoError(t, err)
	assert.Equal(t, 0.4, snap.WinProbability)
	assert.InDelta(t, 2.0, snap.Multiplier, 1e-9)
	assert.Equal(t, 1.0, snap.Boost)
	assert.InDelta(t, 2.0, snap.EffectiveMultiplier(), 1e-9)
}

func TestOddsServiceAppliesActiveBoost(t *testing.T) {
	ctx := context.Background()
	boosts := new(MockBoostRepository)
	boosts.On("ActiveBoost", ctx, int64(1), models.GameDice).
		Return(testutil.CreateTestBoost(1, models.GameDice, 3.0), nil)

	svc := NewOddsService(boosts, fixedRand{})

	snap, err := svc.Snapshot(ctx, 1, models.GameDice)
	require.NoError(t, err)
	assert.Equal(t, 2.0, snap.Multiplier)
	assert.Equal(t, 3.0, snap.Boost)
	assert.Equal(t, 6.0, snap.EffectiveMultiplier())
}

func TestOddsServiceMachineDrivenGames(t *testing.T) {
	ctx := context.Background()
	boosts := new(MockBoostRepository)
	boosts.On("ActiveBoost", ctx, int64(1), mock.Anything).Return(nil, nil)

	svc := NewOddsService(boosts, fixedRand{})

	for _, game := range []models.Game{models.GameCrash, models.GameLadder, models.GameBombs} {
		snap, err := svc.Snapshot(ctx, 1, game)
		require.NoError(t, err)
		assert.Equal(t, 1.0, snap.Multiplier, "game %s", game)
	}

	snap, err := svc.Snapshot(ctx, 1, models.GameScratch)
	require.NoError(t, err)
	assert.Equal(t, 0.2, snap.WinProbability)
}

func TestOddsServiceUnknownGame(t *testing.T) {
	boosts := new(MockBoostRepository)
	svc := NewOddsService(boosts, fixedRand{})

	_, err := svc.Snapshot(context.Background(), 1, models.Game("roulette"))
	assert.Error(t, err)
}
