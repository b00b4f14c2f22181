package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	"github.com/quantbase/equitypricing/internal/pricing/application"
	"github.com/quantbase/equitypricing/internal/pricing/domain"
	"github.com/quantbase/equitypricing/pkg/logger"
)

// PricingHandler HTTP 处理器
// 负责处理与期权定价相关的 HTTP 请求
type PricingHandler struct {
	cmd   *application.PricingCommandService
	query *application.PricingQueryService
}

// NewPricingHandler 创建 HTTP 处理器实例
func NewPricingHandler(cmd *application.PricingCommandService, query *application.PricingQueryService) *PricingHandler {
	return &PricingHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
// 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/european", h.PriceEuropean)
		api.POST("/discrete", h.PriceDiscrete)
		api.POST("/american", h.PriceAmerican)
		api.POST("/greeks", h.GetGreeks)
		api.POST("/validate", h.ValidateLattice)
		api.GET("/results/:symbol", h.ListResults)
		api.GET("/results/:symbol/latest", h.GetLatestResult)
	}
}

// DividendRequest 一笔现金股息
type DividendRequest struct {
	ExDate float64 `json:"ex_date" binding:"min=0"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// EuropeanPricingRequest 连续股息率定价请求
type EuropeanPricingRequest struct {
	Symbol        string  `json:"symbol" binding:"required"`
	Spot          float64 `json:"spot" binding:"required,gt=0"`
	Strike        float64 `json:"strike" binding:"required,gt=0"`
	Maturity      float64 `json:"maturity" binding:"required,gt=0"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	Volatility    float64 `json:"volatility" binding:"required,gt=0"`
	DividendYield float64 `json:"dividend_yield" binding:"min=0"`
}

// DiscretePricingRequest 离散股息定价请求
type DiscretePricingRequest struct {
	Symbol       string            `json:"symbol" binding:"required"`
	Spot         float64           `json:"spot" binding:"required,gt=0"`
	Strike       float64           `json:"strike" binding:"required,gt=0"`
	Maturity     float64           `json:"maturity" binding:"required,gt=0"`
	RiskFreeRate float64           `json:"risk_free_rate"`
	Volatility   float64           `json:"volatility" binding:"required,gt=0"`
	Dividends    []DividendRequest `json:"dividends" binding:"dive"`
}

// ValidateRequest 闭式解与二叉树交叉校验请求
type ValidateRequest struct {
	Symbol       string  `json:"symbol" binding:"required"`
	Spot         float64 `json:"spot" binding:"required,gt=0"`
	Strike       float64 `json:"strike" binding:"required,gt=0"`
	Maturity     float64 `json:"maturity" binding:"required,gt=0"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility" binding:"required,gt=0"`
	Steps        int     `json:"steps" binding:"min=0"`
}

func toDividendInputs(dividends []DividendRequest) []application.DividendInput {
	out := make([]application.DividendInput, 0, len(dividends))
	for _, d := range dividends {
		out = append(out, application.DividendInput{ExDate: d.ExDate, Amount: d.Amount})
	}
	return out
}

// writeError 将领域错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDividendExceedsSpot):
		response.ErrorWithStatus(c, http.StatusUnprocessableEntity, err.Error(), "")
	case errors.Is(err, domain.ErrDegenerateInput), errors.Is(err, domain.ErrInvalidStepCount):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrPricingResultNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	default:
		logger.Error(c.Request.Context(), "pricing request failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}

// PriceEuropean 连续股息率模型定价
func (h *PricingHandler) PriceEuropean(c *gin.Context) {
	var req EuropeanPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.PriceOption(c.Request.Context(), application.PriceOptionCommand{
		Symbol:        req.Symbol,
		Model:         string(domain.ModelContinuousYield),
		Spot:          req.Spot,
		Strike:        req.Strike,
		Maturity:      req.Maturity,
		RiskFreeRate:  req.RiskFreeRate,
		Volatility:    req.Volatility,
		DividendYield: req.DividendYield,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"result":           result,
		"calculation_time": time.Now(),
	})
}

// PriceDiscrete 离散股息远期调整定价
func (h *PricingHandler) PriceDiscrete(c *gin.Context) {
	var req DiscretePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.PriceOption(c.Request.Context(), application.PriceOptionCommand{
		Symbol:       req.Symbol,
		Model:        string(domain.ModelDiscreteDividend),
		Spot:         req.Spot,
		Strike:       req.Strike,
		Maturity:     req.Maturity,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		Dividends:    toDividendInputs(req.Dividends),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"result":           result,
		"calculation_time": time.Now(),
	})
}

// PriceAmerican 美式看涨定价，附带欧式对比
func (h *PricingHandler) PriceAmerican(c *gin.Context) {
	var req DiscretePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	comparison, err := h.query.CompareAmerican(c.Request.Context(), application.CompareAmericanQuery{
		Spot:         req.Spot,
		Strike:       req.Strike,
		Maturity:     req.Maturity,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		Dividends:    toDividendInputs(req.Dividends),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.cmd.PriceOption(c.Request.Context(), application.PriceOptionCommand{
		Symbol:       req.Symbol,
		Model:        string(domain.ModelAmerican),
		Spot:         req.Spot,
		Strike:       req.Strike,
		Maturity:     req.Maturity,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		Dividends:    toDividendInputs(req.Dividends),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"result":           result,
		"comparison":       comparison,
		"calculation_time": time.Now(),
	})
}

// GetGreeks 获取希腊字母
func (h *PricingHandler) GetGreeks(c *gin.Context) {
	var req EuropeanPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	greeks, err := h.query.GetGreeks(c.Request.Context(), application.GreeksQuery{
		Spot:          req.Spot,
		Strike:        req.Strike,
		Maturity:      req.Maturity,
		RiskFreeRate:  req.RiskFreeRate,
		Volatility:    req.Volatility,
		DividendYield: req.DividendYield,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"greeks":           greeks,
		"calculation_time": time.Now(),
	})
}

// ValidateLattice 用二叉树交叉校验闭式解
func (h *PricingHandler) ValidateLattice(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.cmd.ValidateLattice(c.Request.Context(), application.ValidateLatticeCommand{
		Symbol:       req.Symbol,
		Spot:         req.Spot,
		Strike:       req.Strike,
		Maturity:     req.Maturity,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		Steps:        req.Steps,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// ListResults 查询标的历史定价结果
func (h *PricingHandler) ListResults(c *gin.Context) {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	results, err := h.query.ListResults(c.Request.Context(), symbol, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, results)
}

// GetLatestResult 查询标的最近一次定价结果
func (h *PricingHandler) GetLatestResult(c *gin.Context) {
	symbol := c.Param("symbol")

	result, err := h.query.GetLatestResult(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}
