package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadderClimbThenCollect(t *testing.T) {
	l := NewLadder(100, evenOdds())

	res, err := l.Advance(Input{Action: ActionClimb}, &scriptRand{floats: []float64{0.5}})
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, 1, l.Snapshot().Ladder.Step)
	assert.Equal(t, 1.25, l.Snapshot().Ladder.Multiplier)

	res, err = l.Advance(Input{Action: ActionCollect}, &scriptRand{})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(125), res.Settlement.Payout)
	assert.Equal(t, OutcomeCollected, res.Settlement.Outcome)
}

func TestLadderFailedClimbForfeits(t *testing.T) {
	l := NewLadder(100, evenOdds())

	// first rung succeeds at 0.85; a sample at 0.85 fails
	res, err := l.Advance(Input{Action: ActionClimb}, &scriptRand{floats: []float64{0.85}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettleForfeit, res.Settlement.Kind)
	assert.Equal(t, OutcomeCrashed, res.Settlement.Outcome)
}

func TestLadderCollectBeforeFirstClimb(t *testing.T) {
	l := NewLadder(100, evenOdds())
	_, err := l.Advance(Input{Action: ActionCollect}, &scriptRand{})
	assert.ErrorIs(t, err, ErrBadAction)
	assert.Equal(t, []Action{ActionClimb}, l.Snapshot().Actions)
}

func TestLadderTopRungCollectsAutomatically(t *testing.T) {
	l := NewLadder(100, evenOdds())
	l.step = len(ladderMultipliers) - 1

	res, err := l.Advance(Input{Action: ActionClimb}, &scriptRand{floats: []float64{0.01}})
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, SettlePayout, res.Settlement.Kind)
	assert.Equal(t, int64(1000), res.Settlement.Payout)
}

func TestLadderOddsShrinkPerRung(t *testing.T) {
	for i := 1; i < len(ladderStepOdds); i++ {
		assert.Less(t, ladderStepOdds[i], ladderStepOdds[i-1])
	}
	assert.Len(t, ladderStepOdds, len(ladderMultipliers))
}

func TestLadderTimeoutRefunds(t *testing.T) {
	l := NewLadder(100, evenOdds())
	assert.Equal(t, TimeoutRefund, l.Timeout().Kind)
}
