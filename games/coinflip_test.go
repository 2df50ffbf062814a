package games

import (
	"testing"

	"bucks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinflipRejectsUnknownSide(t *testing.T) {
	_, err := NewCoinflip(100, evenOdds(), StartOptions{Choice: "edge"})
	assert.ErrorIs(t, err, ErrBadAction)
}

func TestCoinflipWinPaysMultiplier(t *testing.T) {
	odds := models.OddsSnapshot{WinProbability: 0.4, Multiplier: 2.0, Boost: 1.0}
	c, err := NewCoinflip(100, odds, StartOptions{Choice: SideHeads})
	require.NoError(t, err)

	res, err := c.Advance(Input{Action: ActionResolve}, &scriptRand{floats: []float64{0.39}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(200), res.Settlement.Payout)
	assert.Equal(t, OutcomeWin, res.Settlement.Outcome)
	assert.Equal(t, SideHeads, c.Snapshot().Coinflip.Landed)
}

func TestCoinflipLossForfeitsStake(t *testing.T) {
	c, err := NewCoinflip(100, evenOdds(), StartOptions{Choice: SideTails})
	require.NoError(t, err)

	res, err := c.Advance(Input{Action: ActionResolve}, &scriptRand{floats: []float64{0.99}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettleForfeit, res.Settlement.Kind)
	assert.Equal(t, int64(0), res.Settlement.Payout)
	assert.Equal(t, SideHeads, c.Snapshot().Coinflip.Landed)
}

func TestCoinflipBoostRaisesPayout(t *testing.T) {
	odds := models.OddsSnapshot{WinProbability: 0.4, Multiplier: 2.0, Boost: 2.0}
	c, err := NewCoinflip(100, odds, StartOptions{Choice: SideHeads})
	require.NoError(t, err)

	res, err := c.Advance(Input{Action: ActionResolve}, &scriptRand{floats: []float64{0.1}})
	require.NoError(t, err)
	assert.Equal(t, int64(400), res.Settlement.Payout)
}

func TestCoinflipCannotResolveTwice(t *testing.T) {
	c, err := NewCoinflip(100, evenOdds(), StartOptions{Choice: SideHeads})
	require.NoError(t, err)

	_, err = c.Advance(Input{Action: ActionResolve}, &scriptRand{})
	require.NoError(t, err)
	_, err = c.Advance(Input{Action: ActionResolve}, &scriptRand{})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestDiceStrictlyGreaterWins(t *testing.T) {
	d := NewDice(50, evenOdds())

	// player rolls 8, house rolls 3
	res, err := d.Advance(Input{Action: ActionResolve}, &scriptRand{ints: []int{7, 2}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(100), res.Settlement.Payout)

	view := d.Snapshot().Dice
	assert.Equal(t, 8, view.PlayerRoll)
	assert.Equal(t, 3, view.HouseRoll)
}

func TestDiceTieLoses(t *testing.T) {
	d := NewDice(50, evenOdds())

	res, err := d.Advance(Input{Action: ActionResolve}, &scriptRand{ints: []int{4, 4}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettleForfeit, res.Settlement.Kind)
	assert.Equal(t, OutcomeLose, res.Settlement.Outcome)
}

func TestDiceRejectsForeignAction(t *testing.T) {
	d := NewDice(50, evenOdds())
	_, err := d.Advance(Input{Action: ActionHit}, &scriptRand{})
	assert.ErrorIs(t, err, ErrBadAction)
}
