package domain

import (
	"fmt"
	"math"
)

// BlackScholesEngine 股息调整 Black-Scholes 定价引擎
//
// 支持两种股息模型：
//  1. 连续股息率（Merton 1973）
//  2. 离散现金股息（远期调整法）
//
// 参数一经构造不可变，同一实例可安全地被多个调用方并发使用
type BlackScholesEngine struct {
	spot     float64 // 标的现价
	strike   float64 // 行权价
	maturity float64 // 到期时间（年）
	rate     float64 // 无风险利率
	vol      float64 // 波动率 (sigma)

	norm NormalDistribution
}

// NewBlackScholesEngine 创建定价引擎，使用默认的 erf 正态分布实现
func NewBlackScholesEngine(spot, strike, maturity, rate, vol float64) *BlackScholesEngine {
	return NewBlackScholesEngineWith(spot, strike, maturity, rate, vol, ErfNormal{})
}

// NewBlackScholesEngineWith 创建定价引擎并注入正态分布实现
func NewBlackScholesEngineWith(spot, strike, maturity, rate, vol float64, norm NormalDistribution) *BlackScholesEngine {
	return &BlackScholesEngine{
		spot:     spot,
		strike:   strike,
		maturity: maturity,
		rate:     rate,
		vol:      vol,
		norm:     norm,
	}
}

// checkInputs 校验退化输入
// sigma=0 或 T=0 会导致 d1 除零，直接报错而不是传播 NaN
func (e *BlackScholesEngine) checkInputs() error {
	if e.spot <= 0 || e.strike <= 0 {
		return fmt.Errorf("%w: spot (%v) and strike (%v) must be positive", ErrDegenerateInput, e.spot, e.strike)
	}
	if e.maturity <= 0 || e.vol <= 0 {
		return fmt.Errorf("%w: maturity (%v) and volatility (%v) must be positive", ErrDegenerateInput, e.maturity, e.vol)
	}
	return nil
}

// d1d2 在给定有效现价 s 与连续股息率 q 下计算 d1/d2
func (e *BlackScholesEngine) d1d2(s, q float64) (float64, float64) {
	sqrtT := math.Sqrt(e.maturity)
	d1 := (math.Log(s/e.strike) + (e.rate-q+0.5*e.vol*e.vol)*e.maturity) / (e.vol * sqrtT)
	d2 := d1 - e.vol*sqrtT
	return d1, d2
}

// PriceContinuousYield 连续股息率模型下的欧式看涨期权价格（Merton 1973）
//
//	d1 = [ ln(S/K) + (r - q + σ²/2)·T ] / (σ·√T)
//	d2 = d1 - σ·√T
//	Call = S·e^(-qT)·N(d1) - K·e^(-rT)·N(d2)
func (e *BlackScholesEngine) PriceContinuousYield(q float64) (float64, error) {
	if err := e.checkInputs(); err != nil {
		return 0, err
	}

	d1, d2 := e.d1d2(e.spot, q)

	call := e.spot*math.Exp(-q*e.maturity)*e.norm.CDF(d1) -
		e.strike*math.Exp(-e.rate*e.maturity)*e.norm.CDF(d2)

	return call, nil
}

// PriceDiscreteDividends 离散现金股息模型下的欧式看涨期权价格（远期调整法）
//
// 先将到期前全部股息的现值从现价中扣除，再对调整后现价
// 跑标准 Black-Scholes。股息现值大于等于现价属于调用方
// 配置错误，返回 ErrDividendExceedsSpot
func (e *BlackScholesEngine) PriceDiscreteDividends(schedule *DividendSchedule, curve *DiscountCurve) (float64, error) {
	if err := e.checkInputs(); err != nil {
		return 0, err
	}

	divPV := schedule.PresentValue(e.maturity, curve)
	sAdj := e.spot - divPV

	if sAdj <= 0 {
		return 0, fmt.Errorf("%w: dividend PV (%v) vs spot (%v)", ErrDividendExceedsSpot, divPV, e.spot)
	}

	// 股息已从 sAdj 中扣除，q=0，S 项无 e^(-qT) 因子
	d1, d2 := e.d1d2(sAdj, 0)

	call := sAdj*e.norm.CDF(d1) -
		e.strike*math.Exp(-e.rate*e.maturity)*e.norm.CDF(d2)

	return call, nil
}

// ComputeGreeks 计算连续股息率模型下的五个希腊字母
//
//	Delta = e^(-qT)·N(d1)
//	Gamma = e^(-qT)·n(d1) / (S·σ·√T)
//	Vega  = S·e^(-qT)·n(d1)·√T
//	Theta = -S·e^(-qT)·n(d1)·σ/(2·√T) - r·K·e^(-rT)·N(d2) + q·S·e^(-qT)·N(d1)
//	Rho   = K·T·e^(-rT)·N(d2)
func (e *BlackScholesEngine) ComputeGreeks(q float64) (Greeks, error) {
	if err := e.checkInputs(); err != nil {
		return Greeks{}, err
	}

	sqrtT := math.Sqrt(e.maturity)
	d1, d2 := e.d1d2(e.spot, q)

	nd1 := e.norm.CDF(d1)
	nd2 := e.norm.CDF(d2)
	pd1 := e.norm.PDF(d1)

	qDiscount := math.Exp(-q * e.maturity)
	rDiscount := math.Exp(-e.rate * e.maturity)

	return Greeks{
		Delta: qDiscount * nd1,
		Gamma: qDiscount * pd1 / (e.spot * e.vol * sqrtT),
		Vega:  e.spot * qDiscount * pd1 * sqrtT,
		Theta: -e.spot*qDiscount*pd1*e.vol/(2*sqrtT) -
			e.rate*e.strike*rDiscount*nd2 +
			q*e.spot*qDiscount*nd1,
		Rho: e.strike * e.maturity * rDiscount * nd2,
	}, nil
}

// Spot 返回标的现价
func (e *BlackScholesEngine) Spot() float64 { return e.spot }

// Strike 返回行权价
func (e *BlackScholesEngine) Strike() float64 { return e.strike }

// Maturity 返回到期时间（年）
func (e *BlackScholesEngine) Maturity() float64 { return e.maturity }

// Rate 返回无风险利率
func (e *BlackScholesEngine) Rate() float64 { return e.rate }

// Volatility 返回波动率
func (e *BlackScholesEngine) Volatility() float64 { return e.vol }
