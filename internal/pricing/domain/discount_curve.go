package domain

import "math"

// DiscountCurve 平坦连续复利贴现曲线
// DF(t) = e^(-rate*t)
type DiscountCurve struct {
	rate float64
}

// NewDiscountCurve 创建贴现曲线
func NewDiscountCurve(rate float64) *DiscountCurve {
	return &DiscountCurve{rate: rate}
}

// DiscountFactor 返回 t（年）处的贴现因子
func (c *DiscountCurve) DiscountFactor(t float64) float64 {
	return math.Exp(-c.rate * t)
}

// Rate 返回曲线利率
func (c *DiscountCurve) Rate() float64 {
	return c.rate
}
