package games

import (
	"testing"

	"bucks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrashChanceRisesWithMultiplier(t *testing.T) {
	assert.InDelta(t, 0.10125, crashChance(1.0), 1e-9)
	assert.Greater(t, crashChance(5.0), crashChance(2.0))
	assert.Equal(t, crashChanceCeiling, crashChance(crashMaxMultiplier))
}

func TestCrashTickGrowsMultiplier(t *testing.T) {
	c := NewCrash(100, evenOdds())

	// bust sample survives, growth sample at the midpoint
	res, err := c.Tick(&scriptRand{floats: []float64{0.99, 0.5}})
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.InDelta(t, 1.56, c.multiplier, 1e-9)
	assert.Equal(t, 1, c.Snapshot().Crash.Ticks)
}

func TestCrashTickBustsAtPreGrowthChance(t *testing.T) {
	c := NewCrash(100, evenOdds())

	res, err := c.Tick(&scriptRand{floats: []float64{0.05}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettleForfeit, res.Settlement.Kind)
	assert.Equal(t, OutcomeCrashed, res.Settlement.Outcome)
	// the multiplier never grew
	assert.Equal(t, 1.0, c.multiplier)
}

func TestCrashCashOutPaysCurrentMultiplier(t *testing.T) {
	c := NewCrash(100, evenOdds())
	c.multiplier = 3.5

	res, err := c.Advance(Input{Action: ActionCashOut}, &scriptRand{})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(350), res.Settlement.Payout)
	assert.Equal(t, OutcomeCashedOut, res.Settlement.Outcome)
}

func TestCrashCashOutAppliesBoost(t *testing.T) {
	c := NewCrash(100, models.OddsSnapshot{WinProbability: 1, Multiplier: 1, Boost: 2.0})
	c.multiplier = 2.0

	res, err := c.Advance(Input{Action: ActionCashOut}, &scriptRand{})
	require.NoError(t, err)
	assert.Equal(t, int64(400), res.Settlement.Payout)
}

func TestCrashExitForfeits(t *testing.T) {
	c := NewCrash(100, evenOdds())
	c.multiplier = 9.0

	res, err := c.Advance(Input{Action: ActionExit}, &scriptRand{})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettleForfeit, res.Settlement.Kind)
	assert.Equal(t, int64(0), res.Settlement.Payout)
	assert.Equal(t, OutcomeExited, res.Settlement.Outcome)
}

func TestCrashCeilingCashesOutAutomatically(t *testing.T) {
	c := NewCrash(100, evenOdds())
	c.multiplier = 99.0

	// survive the bust sample, grow past the ceiling
	res, err := c.Tick(&scriptRand{floats: []float64{0.99, 1.0}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(100*crashMaxMultiplier), res.Settlement.Payout)
}

func TestCrashTickAfterSettlement(t *testing.T) {
	c := NewCrash(100, evenOdds())
	_, err := c.Advance(Input{Action: ActionExit}, &scriptRand{})
	require.NoError(t, err)

	_, err = c.Tick(&scriptRand{})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestCrashTimeoutRefunds(t *testing.T) {
	c := NewCrash(100, evenOdds())
	assert.Equal(t, TimeoutRefund, c.Timeout().Kind)
}
