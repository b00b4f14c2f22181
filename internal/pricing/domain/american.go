package domain

// AmericanPricer 带股息的美式看涨期权定价器
//
// 美式价格 = 欧式离散股息价格 + 提前行权溢价。
// 溢价采用简化启发式：当某笔股息大于持有行权价的利息成本
// r·K·(T-exDate) 时认为提前行权最优，按 (div/S)·S·0.01 计提。
// 这是一个刻意保留的近似，不是自由边界求解
type AmericanPricer struct {
	engine   *BlackScholesEngine
	curve    *DiscountCurve
	schedule *DividendSchedule
}

// PriceComparison 欧式与美式价格对比
type PriceComparison struct {
	EuropeanPrice        float64 `json:"european_price"`
	AmericanPrice        float64 `json:"american_price"`
	EarlyExercisePremium float64 `json:"early_exercise_premium"`
}

// NewAmericanPricer 创建美式定价器
// engine/curve/schedule 由调用方持有，定价器只读使用
func NewAmericanPricer(engine *BlackScholesEngine, curve *DiscountCurve, schedule *DividendSchedule) *AmericanPricer {
	return &AmericanPricer{
		engine:   engine,
		curve:    curve,
		schedule: schedule,
	}
}

// PriceAmericanCall 计算美式看涨期权价格
func (p *AmericanPricer) PriceAmericanCall() (float64, error) {
	europeanPrice, err := p.engine.PriceDiscreteDividends(p.schedule, p.curve)
	if err != nil {
		return 0, err
	}

	return europeanPrice + p.earlyExercisePremium(), nil
}

// earlyExercisePremium 累加每笔满足提前行权条件的股息贡献的溢价
// 多笔股息之间不建模相互影响
func (p *AmericanPricer) earlyExercisePremium() float64 {
	premium := 0.0
	maturity := p.engine.Maturity()
	rate := p.engine.Rate()
	strike := p.engine.Strike()
	spot := p.engine.Spot()

	for _, div := range p.schedule.Dividends() {
		// 到期日当天或之后的股息与提前行权无关
		if div.ExDate >= maturity {
			continue
		}

		interestCost := rate * strike * (maturity - div.ExDate)

		if div.Amount > interestCost {
			exerciseProbability := div.Amount / spot
			premium += exerciseProbability * spot * 0.01
		}
	}

	return premium
}

// PriceComparison 计算欧式/美式价格及提前行权溢价
// 报表格式化由接口层负责，这里只产出数值
func (p *AmericanPricer) PriceComparison() (*PriceComparison, error) {
	european, err := p.engine.PriceDiscreteDividends(p.schedule, p.curve)
	if err != nil {
		return nil, err
	}

	american, err := p.PriceAmericanCall()
	if err != nil {
		return nil, err
	}

	return &PriceComparison{
		EuropeanPrice:        european,
		AmericanPrice:        american,
		EarlyExercisePremium: american - european,
	}, nil
}
