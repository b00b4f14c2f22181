package domain

import "time"

const (
	OptionPricedEventType        = "OptionPriced"
	GreeksCalculatedEventType    = "GreeksCalculated"
	ValidationCompletedEventType = "ValidationCompleted"
	PricingErrorEventType        = "PricingError"
)

// OptionPricedEvent 期权定价完成事件
type OptionPricedEvent struct {
	Symbol          string    `json:"symbol"`
	PricingModel    string    `json:"pricing_model"`
	Spot            float64   `json:"spot"`
	Strike          float64   `json:"strike"`
	Maturity        float64   `json:"maturity"`
	RiskFreeRate    float64   `json:"risk_free_rate"`
	Volatility      float64   `json:"volatility"`
	DividendYield   float64   `json:"dividend_yield"`
	DividendPayouts int       `json:"dividend_payouts"`
	OptionPrice     float64   `json:"option_price"`
	CalculatedAt    int64     `json:"calculated_at"`
	OccurredOn      time.Time `json:"occurred_on"`
}

// GreeksCalculatedEvent 希腊字母计算完成事件
type GreeksCalculatedEvent struct {
	Symbol        string    `json:"symbol"`
	Spot          float64   `json:"spot"`
	Strike        float64   `json:"strike"`
	Maturity      float64   `json:"maturity"`
	DividendYield float64   `json:"dividend_yield"`
	Delta         float64   `json:"delta"`
	Gamma         float64   `json:"gamma"`
	Vega          float64   `json:"vega"`
	Theta         float64   `json:"theta"`
	Rho           float64   `json:"rho"`
	CalculatedAt  int64     `json:"calculated_at"`
	OccurredOn    time.Time `json:"occurred_on"`
}

// ValidationCompletedEvent 闭式解与二叉树校验完成事件
type ValidationCompletedEvent struct {
	Symbol             string    `json:"symbol"`
	Steps              int       `json:"steps"`
	ClosedFormPrice    float64   `json:"closed_form_price"`
	LatticePrice       float64   `json:"lattice_price"`
	AbsoluteDifference float64   `json:"absolute_difference"`
	PercentDifference  float64   `json:"percent_difference"`
	Passed             bool      `json:"passed"`
	OccurredOn         time.Time `json:"occurred_on"`
}

// PricingErrorEvent 定价失败事件
type PricingErrorEvent struct {
	Symbol       string    `json:"symbol"`
	PricingModel string    `json:"pricing_model"`
	Reason       string    `json:"reason"`
	OccurredOn   time.Time `json:"occurred_on"`
}
