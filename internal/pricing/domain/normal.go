package domain

import "math"

// NormalDistribution 标准正态分布能力接口
// 定价引擎只依赖 CDF/PDF 两个纯函数，具体实现可替换
type NormalDistribution interface {
	CDF(x float64) float64
	PDF(x float64) float64
}

// ErfNormal 基于 math.Erf 的标准正态分布实现
type ErfNormal struct{}

// CDF 标准正态分布累积分布函数
func (ErfNormal) CDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// PDF 标准正态分布概率密度函数
func (ErfNormal) PDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
