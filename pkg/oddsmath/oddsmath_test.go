package oddsmath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToDecimal tests American to decimal conversion
func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		price    int
		expected float64
	}{
		{"Even money", 100, 2.0},
		{"Underdog +150", 150, 2.5},
		{"Favorite -150", -150, 1 + 100.0/150.0},
		{"Favorite -110", -110, 1 + 100.0/110.0},
		{"Heavy favorite -1000", -1000, 1.1},
		{"Long shot +1000", 1000, 11.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.price)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

// TestToDecimal_Exact tests the documented exact values
func TestToDecimal_Exact(t *testing.T) {
	d, err := ToDecimal(100)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	d, err = ToDecimal(-150)
	require.NoError(t, err)
	assert.InDelta(t, 1+100.0/150.0, d, 1e-12)
}

// TestToDecimal_ZeroPrice tests that zero is rejected
func TestToDecimal_ZeroPrice(t *testing.T) {
	_, err := ToDecimal(0)
	assert.ErrorIs(t, err, ErrZeroPrice)
}

// TestToImpliedProbability tests implied probability conversion
func TestToImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		price    int
		expected float64
	}{
		{"Even money", 100, 0.5},
		{"Favorite -110", -110, 110.0 / 210.0},
		{"Underdog +150", 150, 0.4},
		{"Favorite -200", -200, 2.0 / 3.0},
		{"Long shot +900", 900, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToImpliedProbability(tt.price)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

// TestToImpliedProbability_Bounds tests that implied probability is always within (0, 1)
func TestToImpliedProbability_Bounds(t *testing.T) {
	for _, price := range []int{-100000, -5000, -101, -100, -1, 1, 99, 100, 101, 5000, 100000} {
		p, err := ToImpliedProbability(price)
		require.NoError(t, err)
		assert.Greater(t, p, 0.0, "price %d", price)
		assert.Less(t, p, 1.0, "price %d", price)
	}
}

// TestToImpliedProbability_TwoSidedMarketCarriesVig tests that the probabilities of two
// quoted sides do not in general sum to 1
func TestToImpliedProbability_TwoSidedMarketCarriesVig(t *testing.T) {
	over, err := ToImpliedProbability(-110)
	require.NoError(t, err)
	under, err := ToImpliedProbability(-110)
	require.NoError(t, err)

	assert.Greater(t, over+under, 1.0)

	fav, err := ToImpliedProbability(-150)
	require.NoError(t, err)
	dog, err := ToImpliedProbability(130)
	require.NoError(t, err)

	assert.NotEqual(t, 1.0, fav+dog)
}

// TestToImpliedProbability_ZeroPrice tests that zero is rejected
func TestToImpliedProbability_ZeroPrice(t *testing.T) {
	_, err := ToImpliedProbability(0)
	assert.ErrorIs(t, err, ErrZeroPrice)
}

// TestExpectedValue tests EV against a reference price
func TestExpectedValue(t *testing.T) {
	ev, err := ExpectedValue(-110, 150)
	require.NoError(t, err)

	assert.InDelta(t, (110.0/210.0)*2.5-1, ev, 1e-12)
	assert.Greater(t, ev, 0.0)
}

// TestExpectedValue_Negative tests EV when the offered price is worse than the reference
func TestExpectedValue_Negative(t *testing.T) {
	ev, err := ExpectedValue(-110, -130)
	require.NoError(t, err)
	assert.Less(t, ev, 0.0)
}

// TestExpectedValue_SamePrice tests that pricing a bet at its own reference is breakeven
func TestExpectedValue_SamePrice(t *testing.T) {
	for _, price := range []int{-300, -110, 100, 120, 450} {
		ev, err := ExpectedValue(price, price)
		require.NoError(t, err)

		p, _ := ToImpliedProbability(price)
		d, _ := ToDecimal(price)
		assert.Equal(t, p*d-1, ev)
		assert.InDelta(t, 0.0, ev, 1e-12, "price %d", price)
	}
}

// TestExpectedValue_ZeroPrice tests that zero on either side is surfaced as an error
func TestExpectedValue_ZeroPrice(t *testing.T) {
	_, err := ExpectedValue(0, 150)
	assert.ErrorIs(t, err, ErrZeroPrice)
	assert.Contains(t, err.Error(), "reference price")

	_, err = ExpectedValue(-110, 0)
	assert.ErrorIs(t, err, ErrZeroPrice)
	assert.Contains(t, err.Error(), "offered price")
}

// TestKellyStake tests fractional Kelly sizing
func TestKellyStake(t *testing.T) {
	p := 110.0 / 210.0
	b := 1.5
	fullKelly := (b*p - (1 - p)) / b

	stake, err := KellyStake(1000, 150, -110, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, fullKelly*0.25*1000, stake, 1e-9)
	assert.InDelta(t, 51.587, stake, 0.001)
}

// TestKellyStake_FractionScales tests that the stake is linear in the Kelly fraction
func TestKellyStake_FractionScales(t *testing.T) {
	quarter, err := KellyStake(1000, 150, -110, 0.25)
	require.NoError(t, err)
	full, err := KellyStake(1000, 150, -110, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, full/4, quarter, 1e-9)
}

// TestKellyStake_NoEdge tests that a negative stake is reported rather than clamped
func TestKellyStake_NoEdge(t *testing.T) {
	stake, err := KellyStake(1000, -130, -110, 0.25)
	require.NoError(t, err)
	assert.Less(t, stake, 0.0)
}

// TestKellyStake_MatchesEV tests that full Kelly equals EV divided by net odds
func TestKellyStake_MatchesEV(t *testing.T) {
	ev, err := ExpectedValue(-105, 125)
	require.NoError(t, err)

	stake, err := KellyStake(1, 125, -105, 1)
	require.NoError(t, err)

	assert.InDelta(t, ev/1.25, stake, 1e-12)
}

// TestKellyStake_InvalidPrices tests degenerate inputs
func TestKellyStake_InvalidPrices(t *testing.T) {
	_, err := KellyStake(1000, 0, -110, 0.25)
	assert.True(t, errors.Is(err, ErrZeroPrice))

	_, err = KellyStake(1000, 150, 0, 0.25)
	assert.True(t, errors.Is(err, ErrZeroPrice))
}
