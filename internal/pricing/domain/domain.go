// Package domain 股息调整期权定价服务的领域模型
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDividendExceedsSpot = errors.New("dividend present value exceeds spot price")
	ErrDegenerateInput     = errors.New("degenerate pricing input")
	ErrInvalidStepCount    = errors.New("lattice step count must be at least 1")

	ErrPricingResultNotFound = errors.New("pricing result not found")
)

// PricingModel 定价模型标识
type PricingModel string

const (
	ModelContinuousYield  PricingModel = "ContinuousYield"  // Merton 连续股息率模型
	ModelDiscreteDividend PricingModel = "DiscreteDividend" // 离散现金股息远期调整
	ModelAmerican         PricingModel = "American"         // 欧式价格 + 提前行权溢价
	ModelBinomialEuropean PricingModel = "BinomialEuropean" // CRR 二叉树欧式
	ModelBinomialAmerican PricingModel = "BinomialAmerican" // CRR 二叉树美式
)

// Greeks 希腊字母
// 一次计算产出，之后不再修改
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// PricingResult 定价结果实体
type PricingResult struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Symbol          string          `json:"symbol" gorm:"type:varchar(32);index"`
	OptionPrice     decimal.Decimal `json:"option_price" gorm:"type:decimal(20,8)"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price" gorm:"type:decimal(20,8)"`
	Delta           decimal.Decimal `json:"delta" gorm:"type:decimal(20,10)"`
	Gamma           decimal.Decimal `json:"gamma" gorm:"type:decimal(20,10)"`
	Vega            decimal.Decimal `json:"vega" gorm:"type:decimal(20,10)"`
	Theta           decimal.Decimal `json:"theta" gorm:"type:decimal(20,10)"`
	Rho             decimal.Decimal `json:"rho" gorm:"type:decimal(20,10)"`
	PricingModel    string          `json:"pricing_model" gorm:"type:varchar(32)"`
	CalculatedAt    int64           `json:"calculated_at"`
}

// TableName 指定表名
func (PricingResult) TableName() string {
	return "pricing_results"
}

// PricingRepository 定价结果仓储接口
type PricingRepository interface {
	SavePricingResult(ctx context.Context, result *PricingResult) error
	GetLatest(ctx context.Context, symbol string) (*PricingResult, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*PricingResult, error)
}
