package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
)

type stubRepo struct {
	saved []*domain.PricingResult
}

func (s *stubRepo) SavePricingResult(_ context.Context, result *domain.PricingResult) error {
	s.saved = append(s.saved, result)
	return nil
}

func (s *stubRepo) GetLatest(_ context.Context, symbol string) (*domain.PricingResult, error) {
	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].Symbol == symbol {
			return s.saved[i], nil
		}
	}
	return nil, domain.ErrPricingResultNotFound
}

func (s *stubRepo) ListBySymbol(_ context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var out []*domain.PricingResult
	for i := len(s.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if s.saved[i].Symbol == symbol {
			out = append(out, s.saved[i])
		}
	}
	return out, nil
}

type stubPublisher struct {
	priced    []domain.OptionPricedEvent
	greeks    []domain.GreeksCalculatedEvent
	validated []domain.ValidationCompletedEvent
	errEvents []domain.PricingErrorEvent
}

func (s *stubPublisher) PublishOptionPriced(e domain.OptionPricedEvent) error {
	s.priced = append(s.priced, e)
	return nil
}

func (s *stubPublisher) PublishGreeksCalculated(e domain.GreeksCalculatedEvent) error {
	s.greeks = append(s.greeks, e)
	return nil
}

func (s *stubPublisher) PublishValidationCompleted(e domain.ValidationCompletedEvent) error {
	s.validated = append(s.validated, e)
	return nil
}

func (s *stubPublisher) PublishPricingError(e domain.PricingErrorEvent) error {
	s.errEvents = append(s.errEvents, e)
	return nil
}

func newTestService() (*PricingService, *stubRepo, *stubPublisher) {
	repo := &stubRepo{}
	pub := &stubPublisher{}
	return NewPricingService(repo, pub, 0), repo, pub
}

func TestPriceOptionContinuousYield(t *testing.T) {
	svc, repo, pub := newTestService()

	result, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelContinuousYield),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	price, _ := result.OptionPrice.Float64()
	assert.InDelta(t, 10.4506, price, 0.01)
	assert.Equal(t, string(domain.ModelContinuousYield), result.PricingModel)

	require.Len(t, repo.saved, 1)
	require.Len(t, pub.priced, 1)
	require.Len(t, pub.greeks, 1)
	assert.Equal(t, "ACME", pub.priced[0].Symbol)
	assert.InDelta(t, price, pub.priced[0].OptionPrice, 1e-9)
}

func TestPriceOptionDefaultsToContinuousYield(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ModelContinuousYield), result.PricingModel)
}

func TestPriceOptionDiscreteDividend(t *testing.T) {
	svc, _, _ := newTestService()

	base, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelContinuousYield),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	withDiv, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelDiscreteDividend),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
		Dividends:    []DividendInput{{ExDate: 0.5, Amount: 2.0}},
	})
	require.NoError(t, err)

	basePrice, _ := base.OptionPrice.Float64()
	divPrice, _ := withDiv.OptionPrice.Float64()
	assert.Less(t, divPrice, basePrice)
}

func TestPriceOptionBinomialModels(t *testing.T) {
	svc, _, _ := newTestService()

	european, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelBinomialEuropean),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	american, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelBinomialAmerican),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	ep, _ := european.OptionPrice.Float64()
	ap, _ := american.OptionPrice.Float64()
	assert.InDelta(t, 10.4506, ep, 0.05)
	assert.GreaterOrEqual(t, ap, ep-1e-9)
}

func TestPriceOptionRejectsUnknownModel(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        "monte-carlo",
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.Error(t, err)
	assert.Empty(t, repo.saved)
}

func TestPriceOptionRequiresSymbol(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.Error(t, err)
}

func TestPriceOptionPublishesErrorEvent(t *testing.T) {
	svc, repo, pub := newTestService()

	_, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Model:        string(domain.ModelDiscreteDividend),
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
		Dividends:    []DividendInput{{ExDate: 0.5, Amount: 200.0}},
	})
	require.ErrorIs(t, err, domain.ErrDividendExceedsSpot)

	assert.Empty(t, repo.saved)
	require.Len(t, pub.errEvents, 1)
	assert.Equal(t, "ACME", pub.errEvents[0].Symbol)
}

func TestPriceOptionNilPublisher(t *testing.T) {
	repo := &stubRepo{}
	svc := NewPricingService(repo, nil, 0)

	_, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:       "ACME",
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestValidateLatticeDefaultSteps(t *testing.T) {
	svc, _, pub := newTestService()

	result, err := svc.ValidateLattice(context.Background(), ValidateLatticeCommand{
		Symbol:       "ACME",
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	assert.True(t, result.Passed)
	require.Len(t, pub.validated, 1)
	assert.Equal(t, defaultLatticeSteps, pub.validated[0].Steps)
}

func TestGetGreeksQuery(t *testing.T) {
	svc, _, _ := newTestService()

	greeks, err := svc.GetGreeks(context.Background(), GreeksQuery{
		Spot:         100,
		Strike:       100,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	})
	require.NoError(t, err)

	assert.Greater(t, greeks.Delta, 0.0)
	assert.Less(t, greeks.Delta, 1.0)
	assert.Greater(t, greeks.Gamma, 0.0)
	assert.Greater(t, greeks.Vega, 0.0)
}

func TestCompareAmericanQuery(t *testing.T) {
	svc, _, _ := newTestService()

	cmp, err := svc.CompareAmerican(context.Background(), CompareAmericanQuery{
		Spot:         100,
		Strike:       105,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
		Dividends:    []DividendInput{{ExDate: 0.5, Amount: 3.0}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.03, cmp.EarlyExercisePremium, 1e-12)
	assert.Greater(t, cmp.AmericanPrice, cmp.EuropeanPrice)
}

func TestLatestAndListResults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.PriceOption(ctx, PriceOptionCommand{
			Symbol:       "ACME",
			Spot:         100 + float64(i),
			Strike:       100,
			Maturity:     1.0,
			RiskFreeRate: 0.05,
			Volatility:   0.20,
		})
		require.NoError(t, err)
	}

	latest, err := svc.GetLatestResult(ctx, "ACME")
	require.NoError(t, err)
	spot, _ := latest.UnderlyingPrice.Float64()
	assert.InDelta(t, 102.0, spot, 1e-9)

	results, err := svc.ListResults(ctx, "ACME", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = svc.GetLatestResult(ctx, "UNKNOWN")
	require.ErrorIs(t, err, domain.ErrPricingResultNotFound)
}
