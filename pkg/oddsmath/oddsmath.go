// Package oddsmath converts American prices and computes implied probability,
// expected value and Kelly stakes. Every function is pure.
package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrZeroPrice is returned for a price of 0, which is undefined in American odds
	ErrZeroPrice = errors.New("invalid American price: cannot be 0")

	// ErrDegenerateOdds is returned when a computation would divide by zero or yield NaN/Inf
	ErrDegenerateOdds = errors.New("degenerate odds computation")
)

// ToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.667
func ToDecimal(price int) (float64, error) {
	if price == 0 {
		return 0, ErrZeroPrice
	}

	if price > 0 {
		return 1.0 + float64(price)/100.0, nil
	}

	return 1.0 + 100.0/float64(-price), nil
}

// ToImpliedProbability converts American odds to the implied win probability, ignoring vig
// American -110 → 0.5238
// American +150 → 0.40
func ToImpliedProbability(price int) (float64, error) {
	if price == 0 {
		return 0, ErrZeroPrice
	}

	if price < 0 {
		abs := float64(-price)
		return abs / (abs + 100.0), nil
	}

	return 100.0 / (float64(price) + 100.0), nil
}

// ExpectedValue returns the expected profit of a unit stake at offeredPrice, taking the
// reference price's implied probability as the true probability.
// EV = P(ref) × decimal(offered) - 1
func ExpectedValue(referencePrice, offeredPrice int) (float64, error) {
	p, err := ToImpliedProbability(referencePrice)
	if err != nil {
		return 0, fmt.Errorf("reference price: %w", err)
	}

	d, err := ToDecimal(offeredPrice)
	if err != nil {
		return 0, fmt.Errorf("offered price: %w", err)
	}

	return finite(p*d - 1.0)
}

// KellyStake returns the fractional Kelly stake for a bet at offeredPrice.
//
//	p = P(ref), q = 1 - p, b = decimal(offered) - 1
//	stake = ((b×p - q) / b) × kellyFraction × bankroll
//
// A negative stake means no edge exists; it is returned as computed.
func KellyStake(bankroll float64, offeredPrice, referencePrice int, kellyFraction float64) (float64, error) {
	p, err := ToImpliedProbability(referencePrice)
	if err != nil {
		return 0, fmt.Errorf("reference price: %w", err)
	}

	d, err := ToDecimal(offeredPrice)
	if err != nil {
		return 0, fmt.Errorf("offered price: %w", err)
	}

	b := d - 1.0 // Net odds
	if b == 0 {
		return 0, fmt.Errorf("net odds of zero for price %d: %w", offeredPrice, ErrDegenerateOdds)
	}

	q := 1.0 - p
	fullKelly := (b*p - q) / b

	return finite(fullKelly * kellyFraction * bankroll)
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrDegenerateOdds
	}
	return v, nil
}
