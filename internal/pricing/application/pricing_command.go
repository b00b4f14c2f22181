package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
	"github.com/quantbase/equitypricing/pkg/logger"
)

// 缺省二叉树步数，足以使 CRR 树收敛到闭式解 0.1% 以内
const defaultLatticeSteps = 500

// PricingCommandService 处理定价相关的命令操作
// 定价结果落库，领域事件经 Outbox 发布
type PricingCommandService struct {
	repo         domain.PricingRepository
	publisher    domain.EventPublisher
	defaultSteps int
}

// NewPricingCommandService 创建新的 PricingCommandService 实例
// defaultSteps 小于等于 0 时使用内置默认步数
func NewPricingCommandService(repo domain.PricingRepository, publisher domain.EventPublisher, defaultSteps int) *PricingCommandService {
	if defaultSteps <= 0 {
		defaultSteps = defaultLatticeSteps
	}
	return &PricingCommandService{
		repo:         repo,
		publisher:    publisher,
		defaultSteps: defaultSteps,
	}
}

// buildSchedule 将命令中的股息输入装配为领域股息表
func buildSchedule(dividends []DividendInput) *domain.DividendSchedule {
	schedule := domain.NewDividendSchedule()
	for _, d := range dividends {
		schedule.AddDividend(d.ExDate, d.Amount)
	}
	return schedule
}

// PriceOption 期权定价
// 根据命令中的模型选择定价方法，结果持久化并发布领域事件
func (c *PricingCommandService) PriceOption(ctx context.Context, cmd PriceOptionCommand) (*domain.PricingResult, error) {
	if cmd.Symbol == "" {
		return nil, errors.New("symbol is required")
	}

	model := domain.PricingModel(cmd.Model)
	if model == "" {
		model = domain.ModelContinuousYield
	}

	steps := cmd.Steps
	if steps <= 0 {
		steps = c.defaultSteps
	}

	engine := domain.NewBlackScholesEngine(cmd.Spot, cmd.Strike, cmd.Maturity, cmd.RiskFreeRate, cmd.Volatility)
	curve := domain.NewDiscountCurve(cmd.RiskFreeRate)
	schedule := buildSchedule(cmd.Dividends)

	var price float64
	var err error
	greeksYield := 0.0

	switch model {
	case domain.ModelContinuousYield:
		price, err = engine.PriceContinuousYield(cmd.DividendYield)
		greeksYield = cmd.DividendYield
	case domain.ModelDiscreteDividend:
		price, err = engine.PriceDiscreteDividends(schedule, curve)
	case domain.ModelAmerican:
		price, err = domain.NewAmericanPricer(engine, curve, schedule).PriceAmericanCall()
	case domain.ModelBinomialEuropean:
		price, err = domain.NewBinomialTree(cmd.Spot, cmd.Strike, cmd.Maturity, cmd.RiskFreeRate, cmd.Volatility, steps).PriceEuropeanCall()
	case domain.ModelBinomialAmerican:
		price, err = domain.NewBinomialTree(cmd.Spot, cmd.Strike, cmd.Maturity, cmd.RiskFreeRate, cmd.Volatility, steps).PriceAmericanCall()
	default:
		return nil, errors.New("unknown pricing model: " + cmd.Model)
	}

	if err != nil {
		c.publishError(cmd.Symbol, model, err)
		return nil, err
	}

	// 希腊字母在连续股息率模型下定义，其余模型按 q=0 报告
	greeks, err := engine.ComputeGreeks(greeksYield)
	if err != nil {
		c.publishError(cmd.Symbol, model, err)
		return nil, err
	}

	result := &domain.PricingResult{
		Symbol:          cmd.Symbol,
		OptionPrice:     decimal.NewFromFloat(price),
		UnderlyingPrice: decimal.NewFromFloat(cmd.Spot),
		Delta:           decimal.NewFromFloat(greeks.Delta),
		Gamma:           decimal.NewFromFloat(greeks.Gamma),
		Vega:            decimal.NewFromFloat(greeks.Vega),
		Theta:           decimal.NewFromFloat(greeks.Theta),
		Rho:             decimal.NewFromFloat(greeks.Rho),
		PricingModel:    string(model),
		CalculatedAt:    time.Now().Unix(),
	}

	if err := c.repo.SavePricingResult(ctx, result); err != nil {
		return nil, err
	}

	if c.publisher == nil {
		return result, nil
	}

	if err := c.publisher.PublishOptionPriced(domain.OptionPricedEvent{
		Symbol:          cmd.Symbol,
		PricingModel:    string(model),
		Spot:            cmd.Spot,
		Strike:          cmd.Strike,
		Maturity:        cmd.Maturity,
		RiskFreeRate:    cmd.RiskFreeRate,
		Volatility:      cmd.Volatility,
		DividendYield:   cmd.DividendYield,
		DividendPayouts: schedule.Len(),
		OptionPrice:     price,
		CalculatedAt:    result.CalculatedAt,
		OccurredOn:      time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := c.publisher.PublishGreeksCalculated(domain.GreeksCalculatedEvent{
		Symbol:        cmd.Symbol,
		Spot:          cmd.Spot,
		Strike:        cmd.Strike,
		Maturity:      cmd.Maturity,
		DividendYield: greeksYield,
		Delta:         greeks.Delta,
		Gamma:         greeks.Gamma,
		Vega:          greeks.Vega,
		Theta:         greeks.Theta,
		Rho:           greeks.Rho,
		CalculatedAt:  result.CalculatedAt,
		OccurredOn:    time.Now(),
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ValidateLattice 用二叉树交叉校验闭式解
func (c *PricingCommandService) ValidateLattice(ctx context.Context, cmd ValidateLatticeCommand) (*domain.ValidationResult, error) {
	steps := cmd.Steps
	if steps <= 0 {
		steps = c.defaultSteps
	}

	engine := domain.NewBlackScholesEngine(cmd.Spot, cmd.Strike, cmd.Maturity, cmd.RiskFreeRate, cmd.Volatility)

	closedForm, err := engine.PriceContinuousYield(0.0)
	if err != nil {
		return nil, err
	}

	tree := domain.NewBinomialTree(cmd.Spot, cmd.Strike, cmd.Maturity, cmd.RiskFreeRate, cmd.Volatility, steps)
	lattice, err := tree.PriceEuropeanCall()
	if err != nil {
		return nil, err
	}

	result, err := domain.Validate(closedForm, lattice)
	if err != nil {
		return nil, err
	}

	if !result.Passed {
		logger.Warn(ctx, "lattice validation failed",
			"symbol", cmd.Symbol,
			"steps", steps,
			"percent_difference", result.PercentDifference,
		)
	}

	if c.publisher != nil {
		if err := c.publisher.PublishValidationCompleted(domain.ValidationCompletedEvent{
			Symbol:             cmd.Symbol,
			Steps:              steps,
			ClosedFormPrice:    result.ClosedFormPrice,
			LatticePrice:       result.LatticePrice,
			AbsoluteDifference: result.AbsoluteDifference,
			PercentDifference:  result.PercentDifference,
			Passed:             result.Passed,
			OccurredOn:         time.Now(),
		}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (c *PricingCommandService) publishError(symbol string, model domain.PricingModel, cause error) {
	if c.publisher == nil {
		return
	}
	_ = c.publisher.PublishPricingError(domain.PricingErrorEvent{
		Symbol:       symbol,
		PricingModel: string(model),
		Reason:       cause.Error(),
		OccurredOn:   time.Now(),
	})
}
