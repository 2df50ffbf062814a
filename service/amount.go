package service

import (
	"fmt"
	"strconv"
	"strings"
)

// suffix multipliers for shorthand amounts
var amountSuffixes = map[byte]int64{
	'k': 1_000,
	'm': 1_000_000,
	'b': 1_000_000_000,
	't': 1_000_000_000_000,
}

// ParseAmount turns a user-supplied amount string into a concrete value.
// Accepted forms: plain integers with optional commas ("12,500"), shorthand
// suffixes with an optional decimal base ("2.5k", "1m"), and the symbolic
// words all, half and quarter resolved against the reference balance.
// The symbolic forms are reported so callers can clamp instead of reject.
func ParseAmount(input string, reference int64) (amount int64, symbolic bool, err error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}

	switch s {
	case "all", "max":
		return reference, true, nil
	case "half":
		return reference / 2, true, nil
	case "quarter":
		return reference / 4, true, nil
	}

	multiplier := int64(1)
	if m, ok := amountSuffixes[s[len(s)-1]]; ok {
		multiplier = m
		s = s[:len(s)-1]
		if s == "" {
			return 0, false, fmt.Errorf("%w: %q", ErrInvalidInput, input)
		}
	}

	if multiplier > 1 {
		// decimal bases only make sense with a suffix ("1.5k")
		base, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrInvalidInput, input)
		}
		return int64(base * float64(multiplier)), false, nil
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	return value, false, nil
}

// ParsePositiveAmount parses an amount and requires the result to be
// positive. Symbolic forms resolve against the reference balance.
func ParsePositiveAmount(input string, reference int64) (int64, error) {
	amount, _, err := ParseAmount(input, reference)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return amount, nil
}

// ResolveStake parses a stake string against the wallet and applies the
// wager ceiling: symbolic amounts clamp down to the ceiling, an explicit
// amount above it is rejected outright.
func ResolveStake(input string, wallet, maxStake int64) (int64, error) {
	amount, symbolic, err := ParseAmount(input, wallet)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: stake must be positive", ErrInvalidInput)
	}
	if amount > maxStake {
		if !symbolic {
			return 0, fmt.Errorf("%w: %d over the %d limit", ErrOverMaximum, amount, maxStake)
		}
		amount = maxStake
	}
	return amount, nil
}
