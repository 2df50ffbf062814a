package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		reference int64
		want      int64
		symbolic  bool
		wantErr   bool
	}{
		{name: "plain integer", input: "500", want: 500},
		{name: "commas stripped", input: "12,500", want: 12500},
		{name: "whitespace trimmed", input: "  42 ", want: 42},
		{name: "thousand suffix", input: "2k", want: 2000},
		{name: "decimal with suffix", input: "2.5k", want: 2500},
		{name: "million suffix", input: "1m", want: 1_000_000},
		{name: "billion suffix", input: "3b", want: 3_000_000_000},
		{name: "trillion suffix", input: "1t", want: 1_000_000_000_000},
		{name: "uppercase suffix", input: "5K", want: 5000},
		{name: "all", input: "all", reference: 777, want: 777, symbolic: true},
		{name: "half", input: "half", reference: 1001, want: 500, symbolic: true},
		{name: "quarter", input: "quarter", reference: 1000, want: 250, symbolic: true},
		{name: "negative passes through", input: "-5", want: -5},
		{name: "empty", input: "", wantErr: true},
		{name: "bare suffix", input: "k", wantErr: true},
		{name: "garbage", input: "lots", wantErr: true},
		{name: "decimal without suffix", input: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, symbolic, err := ParseAmount(tt.input, tt.reference)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.symbolic, symbolic)
		})
	}
}

func TestParsePositiveAmount(t *testing.T) {
	_, err := ParsePositiveAmount("0", 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParsePositiveAmount("-50", 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := ParsePositiveAmount("all", 321)
	require.NoError(t, err)
	assert.Equal(t, int64(321), got)
}

func TestResolveStake(t *testing.T) {
	t.Run("explicit within limit", func(t *testing.T) {
		got, err := ResolveStake("1000", 5000, 250_000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got)
	})

	t.Run("explicit over limit is rejected", func(t *testing.T) {
		_, err := ResolveStake("300k", 1_000_000, 250_000)
		assert.ErrorIs(t, err, ErrOverMaximum)
	})

	t.Run("symbolic over limit clamps", func(t *testing.T) {
		got, err := ResolveStake("all", 1_000_000, 250_000)
		require.NoError(t, err)
		assert.Equal(t, int64(250_000), got)
	})

	t.Run("zero stake rejected", func(t *testing.T) {
		_, err := ResolveStake("all", 0, 250_000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
