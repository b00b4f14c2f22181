package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDividendsIterateInAscendingOrder(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.75, 1.0)
	schedule.AddDividend(0.25, 2.0)
	schedule.AddDividend(0.5, 3.0)

	entries := schedule.Dividends()
	require.Len(t, entries, 3)
	assert.Equal(t, 0.25, entries[0].ExDate)
	assert.Equal(t, 0.5, entries[1].ExDate)
	assert.Equal(t, 0.75, entries[2].ExDate)
}

func TestAddDividendReplacesSameExDate(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 2.0)
	schedule.AddDividend(0.5, 3.5)

	entries := schedule.Dividends()
	require.Len(t, entries, 1)
	assert.Equal(t, 3.5, entries[0].Amount)
}

func TestPresentValueDiscountsEachDividend(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 2.0)
	curve := NewDiscountCurve(0.05)

	// PV = 2 * e^(-0.05*0.5) = 1.9506
	pv := schedule.PresentValue(1.0, curve)
	assert.InDelta(t, 2.0*math.Exp(-0.05*0.5), pv, 1e-12)
}

func TestPresentValueExcludesDividendsAfterExpiry(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 2.0)
	schedule.AddDividend(1.5, 10.0)
	curve := NewDiscountCurve(0.05)

	pv := schedule.PresentValue(1.0, curve)
	assert.InDelta(t, 2.0*math.Exp(-0.05*0.5), pv, 1e-12)
}

func TestPresentValueIncludesDividendAtExpiry(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(1.0, 2.0)
	curve := NewDiscountCurve(0.05)

	pv := schedule.PresentValue(1.0, curve)
	assert.InDelta(t, 2.0*math.Exp(-0.05), pv, 1e-12)
}

func TestHasDividendsBefore(t *testing.T) {
	schedule := NewDividendSchedule()
	assert.False(t, schedule.HasDividendsBefore(1.0))

	schedule.AddDividend(1.5, 2.0)
	assert.False(t, schedule.HasDividendsBefore(1.0))

	schedule.AddDividend(0.5, 2.0)
	assert.True(t, schedule.HasDividendsBefore(1.0))
}

func TestDividendsReturnsCopy(t *testing.T) {
	schedule := NewDividendSchedule()
	schedule.AddDividend(0.5, 2.0)

	entries := schedule.Dividends()
	entries[0].Amount = 99.0

	assert.Equal(t, 2.0, schedule.Dividends()[0].Amount)
}

func TestDiscountFactor(t *testing.T) {
	curve := NewDiscountCurve(0.05)

	assert.InDelta(t, 1.0, curve.DiscountFactor(0), 1e-12)
	assert.InDelta(t, math.Exp(-0.05), curve.DiscountFactor(1.0), 1e-12)
	assert.Equal(t, 0.05, curve.Rate())
}
