package application

// DividendInput 一笔现金股息输入
type DividendInput struct {
	ExDate float64 `json:"ex_date"`
	Amount float64 `json:"amount"`
}

// PriceOptionCommand 期权定价命令
type PriceOptionCommand struct {
	Symbol        string
	Model         string
	Spot          float64
	Strike        float64
	Maturity      float64
	RiskFreeRate  float64
	Volatility    float64
	DividendYield float64
	Dividends     []DividendInput
	Steps         int
}

// ValidateLatticeCommand 闭式解与二叉树交叉校验命令
type ValidateLatticeCommand struct {
	Symbol       string
	Spot         float64
	Strike       float64
	Maturity     float64
	RiskFreeRate float64
	Volatility   float64
	Steps        int
}

// GreeksQuery 希腊字母查询
type GreeksQuery struct {
	Spot          float64
	Strike        float64
	Maturity      float64
	RiskFreeRate  float64
	Volatility    float64
	DividendYield float64
}

// CompareAmericanQuery 欧式/美式价格对比查询
type CompareAmericanQuery struct {
	Spot         float64
	Strike       float64
	Maturity     float64
	RiskFreeRate float64
	Volatility   float64
	Dividends    []DividendInput
}
