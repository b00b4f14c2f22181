package domain

import (
	"fmt"
	"math"
)

// BinomialTree CRR 二叉树定价器，用于交叉验证闭式解
//
//	dt = T/N
//	u  = e^(σ·√dt)，d = 1/u
//	p  = (e^(r·dt) - d) / (u - d)
type BinomialTree struct {
	spot     float64
	strike   float64
	maturity float64
	rate     float64
	vol      float64
	steps    int
}

// ValidationResult 闭式解与二叉树价格的校验结果
// 百分比偏差小于 0.1% 视为通过
type ValidationResult struct {
	ClosedFormPrice    float64 `json:"closed_form_price"`
	LatticePrice       float64 `json:"lattice_price"`
	AbsoluteDifference float64 `json:"absolute_difference"`
	PercentDifference  float64 `json:"percent_difference"`
	Passed             bool    `json:"passed"`
}

// NewBinomialTree 创建二叉树定价器
func NewBinomialTree(spot, strike, maturity, rate, vol float64, steps int) *BinomialTree {
	return &BinomialTree{
		spot:     spot,
		strike:   strike,
		maturity: maturity,
		rate:     rate,
		vol:      vol,
		steps:    steps,
	}
}

func (t *BinomialTree) checkInputs() error {
	if t.steps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidStepCount, t.steps)
	}
	if t.spot <= 0 || t.strike <= 0 {
		return fmt.Errorf("%w: spot (%v) and strike (%v) must be positive", ErrDegenerateInput, t.spot, t.strike)
	}
	if t.maturity <= 0 || t.vol <= 0 {
		return fmt.Errorf("%w: maturity (%v) and volatility (%v) must be positive", ErrDegenerateInput, t.maturity, t.vol)
	}
	return nil
}

// lattice 返回共用的树参数
func (t *BinomialTree) lattice() (u, d, p, discount float64) {
	dt := t.maturity / float64(t.steps)
	u = math.Exp(t.vol * math.Sqrt(dt))
	d = 1.0 / u
	p = (math.Exp(t.rate*dt) - d) / (u - d)
	discount = math.Exp(-t.rate * dt)
	return u, d, p, discount
}

// terminalPayoffs 返回到期各节点的看涨期权收益 max(S·u^i·d^(N-i) - K, 0)
func (t *BinomialTree) terminalPayoffs(u, d float64) []float64 {
	values := make([]float64, t.steps+1)
	for i := 0; i <= t.steps; i++ {
		price := t.spot * math.Pow(u, float64(i)) * math.Pow(d, float64(t.steps-i))
		values[i] = math.Max(price-t.strike, 0)
	}
	return values
}

// PriceEuropeanCall 二叉树欧式看涨期权价格，逐层向前折现
func (t *BinomialTree) PriceEuropeanCall() (float64, error) {
	if err := t.checkInputs(); err != nil {
		return 0, err
	}

	u, d, p, discount := t.lattice()
	values := t.terminalPayoffs(u, d)

	for step := t.steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			values[i] = discount * (p*values[i+1] + (1-p)*values[i])
		}
	}

	return values[0], nil
}

// PriceAmericanCall 二叉树美式看涨期权价格
// 每个节点取持有价值与立即行权价值的较大者
func (t *BinomialTree) PriceAmericanCall() (float64, error) {
	if err := t.checkInputs(); err != nil {
		return 0, err
	}

	u, d, p, discount := t.lattice()
	values := t.terminalPayoffs(u, d)

	for step := t.steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			stockAtNode := t.spot * math.Pow(u, float64(i)) * math.Pow(d, float64(step-i))

			holdValue := discount * (p*values[i+1] + (1-p)*values[i])
			exerciseValue := math.Max(stockAtNode-t.strike, 0)

			values[i] = math.Max(holdValue, exerciseValue)
		}
	}

	return values[0], nil
}

// Validate 比较闭式解与二叉树价格
// 闭式解接近零时百分比偏差无意义，返回退化输入错误
func Validate(closedFormPrice, latticePrice float64) (*ValidationResult, error) {
	if math.Abs(closedFormPrice) < 1e-10 {
		return nil, fmt.Errorf("%w: closed-form price (%v) too close to zero for percent comparison", ErrDegenerateInput, closedFormPrice)
	}

	difference := math.Abs(closedFormPrice - latticePrice)
	percentDiff := difference / closedFormPrice * 100

	return &ValidationResult{
		ClosedFormPrice:    closedFormPrice,
		LatticePrice:       latticePrice,
		AbsoluteDifference: difference,
		PercentDifference:  percentDiff,
		Passed:             percentDiff < 0.1,
	}, nil
}
