package application

import (
	"context"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
)

// PricingQueryService 处理定价相关的查询操作
// 纯计算型查询不落库、不发事件
type PricingQueryService struct {
	repo domain.PricingRepository
}

// NewPricingQueryService 创建新的 PricingQueryService 实例
func NewPricingQueryService(repo domain.PricingRepository) *PricingQueryService {
	return &PricingQueryService{
		repo: repo,
	}
}

// GetGreeks 计算连续股息率模型下的希腊字母
func (q *PricingQueryService) GetGreeks(ctx context.Context, query GreeksQuery) (*domain.Greeks, error) {
	engine := domain.NewBlackScholesEngine(query.Spot, query.Strike, query.Maturity, query.RiskFreeRate, query.Volatility)

	greeks, err := engine.ComputeGreeks(query.DividendYield)
	if err != nil {
		return nil, err
	}
	return &greeks, nil
}

// CompareAmerican 对比欧式价格与含提前行权溢价的美式价格
func (q *PricingQueryService) CompareAmerican(ctx context.Context, query CompareAmericanQuery) (*domain.PriceComparison, error) {
	engine := domain.NewBlackScholesEngine(query.Spot, query.Strike, query.Maturity, query.RiskFreeRate, query.Volatility)
	curve := domain.NewDiscountCurve(query.RiskFreeRate)
	schedule := buildSchedule(query.Dividends)

	pricer := domain.NewAmericanPricer(engine, curve, schedule)
	return pricer.PriceComparison()
}

// GetLatestResult 查询标的最近一次定价结果
func (q *PricingQueryService) GetLatestResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	return q.repo.GetLatest(ctx, symbol)
}

// ListResults 查询标的的历史定价结果
func (q *PricingQueryService) ListResults(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return q.repo.ListBySymbol(ctx, symbol, limit)
}
