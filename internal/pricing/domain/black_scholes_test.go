package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceTolerance = 0.01

func TestPriceContinuousYieldKnownValue(t *testing.T) {
	// S=K=100, T=1, r=5%, sigma=20% 的无股息看涨期权已知值 10.4506
	engine := NewBlackScholesEngine(100, 100, 1.0, 0.05, 0.20)

	price, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 10.4506, price, priceTolerance)
}

func TestPriceContinuousYieldPositive(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)

	price, err := engine.PriceContinuousYield(0.03)
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)
}

func TestHigherStrikeReducesPrice(t *testing.T) {
	atm := NewBlackScholesEngine(100, 100, 1.0, 0.05, 0.20)
	otm := NewBlackScholesEngine(100, 110, 1.0, 0.05, 0.20)

	atmPrice, err := atm.PriceContinuousYield(0.0)
	require.NoError(t, err)
	otmPrice, err := otm.PriceContinuousYield(0.0)
	require.NoError(t, err)

	assert.Less(t, otmPrice, atmPrice)
}

func TestHigherDividendYieldReducesPrice(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)

	noDiv, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)
	lowDiv, err := engine.PriceContinuousYield(0.02)
	require.NoError(t, err)
	highDiv, err := engine.PriceContinuousYield(0.05)
	require.NoError(t, err)

	assert.Greater(t, noDiv, lowDiv)
	assert.Greater(t, lowDiv, highDiv)
}

func TestHigherVolatilityIncreasesPrice(t *testing.T) {
	lowVol := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.10)
	highVol := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.40)

	lowPrice, err := lowVol.PriceContinuousYield(0.0)
	require.NoError(t, err)
	highPrice, err := highVol.PriceContinuousYield(0.0)
	require.NoError(t, err)

	assert.Greater(t, highPrice, lowPrice)
}

func TestDiscreteDividendReducesPrice(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)

	noDiv, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)

	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 2.0)

	withDiv, err := engine.PriceDiscreteDividends(schedule, curve)
	require.NoError(t, err)

	assert.Less(t, withDiv, noDiv)
}

func TestLargerDividendReducesPriceMore(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)

	small := NewDividendSchedule()
	small.AddDividend(0.5, 1.0)
	large := NewDividendSchedule()
	large.AddDividend(0.5, 3.0)

	smallPrice, err := engine.PriceDiscreteDividends(small, curve)
	require.NoError(t, err)
	largePrice, err := engine.PriceDiscreteDividends(large, curve)
	require.NoError(t, err)

	assert.Less(t, largePrice, smallPrice)
}

func TestDividendAfterExpiryIgnored(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)

	noDiv, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)

	schedule := NewDividendSchedule()
	schedule.AddDividend(1.5, 2.0)

	withLateDiv, err := engine.PriceDiscreteDividends(schedule, curve)
	require.NoError(t, err)

	assert.InDelta(t, noDiv, withLateDiv, 1e-12)
}

func TestExcessiveDividendFails(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)

	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 200.0)

	_, err := engine.PriceDiscreteDividends(schedule, curve)
	require.ErrorIs(t, err, ErrDividendExceedsSpot)
}

func TestDegenerateInputsRejected(t *testing.T) {
	tests := []struct {
		name                           string
		spot, strike, maturity, r, vol float64
	}{
		{"zero maturity", 100, 105, 0, 0.05, 0.20},
		{"zero volatility", 100, 105, 1.0, 0.05, 0},
		{"negative spot", -100, 105, 1.0, 0.05, 0.20},
		{"zero strike", 100, 0, 1.0, 0.05, 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewBlackScholesEngine(tt.spot, tt.strike, tt.maturity, tt.r, tt.vol)

			_, err := engine.PriceContinuousYield(0.0)
			assert.ErrorIs(t, err, ErrDegenerateInput)

			_, err = engine.PriceDiscreteDividends(NewDividendSchedule(), NewDiscountCurve(tt.r))
			assert.ErrorIs(t, err, ErrDegenerateInput)

			_, err = engine.ComputeGreeks(0.0)
			assert.ErrorIs(t, err, ErrDegenerateInput)
		})
	}
}

func TestFailedCallLeavesEngineUsable(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)

	bad := NewDividendSchedule()
	bad.AddDividend(0.5, 200.0)
	_, err := engine.PriceDiscreteDividends(bad, curve)
	require.Error(t, err)

	// 失败不应破坏引擎状态
	price, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)
}

func TestPricingIsDeterministic(t *testing.T) {
	engine := NewBlackScholesEngine(100, 105, 1.0, 0.05, 0.20)
	curve := NewDiscountCurve(0.05)
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.25, 0.5)
	schedule.AddDividend(0.75, 0.5)

	p1, err := engine.PriceContinuousYield(0.03)
	require.NoError(t, err)
	p2, err := engine.PriceContinuousYield(0.03)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	d1, err := engine.PriceDiscreteDividends(schedule, curve)
	require.NoError(t, err)
	d2, err := engine.PriceDiscreteDividends(schedule, curve)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestInjectedNormalDistributionIsUsed(t *testing.T) {
	engine := NewBlackScholesEngineWith(100, 100, 1.0, 0.05, 0.20, ErfNormal{})
	reference := NewBlackScholesEngine(100, 100, 1.0, 0.05, 0.20)

	p1, err := engine.PriceContinuousYield(0.0)
	require.NoError(t, err)
	p2, err := reference.PriceContinuousYield(0.0)
	require.NoError(t, err)

	assert.Equal(t, p2, p1)
}
