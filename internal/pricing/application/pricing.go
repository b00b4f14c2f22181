package application

import (
	"github.com/quantbase/equitypricing/internal/pricing/domain"
)

// PricingService 定价应用服务门面，聚合命令与查询服务
type PricingService struct {
	*PricingCommandService
	*PricingQueryService
}

// NewPricingService 创建新的 PricingService 实例
func NewPricingService(repo domain.PricingRepository, publisher domain.EventPublisher, defaultSteps int) *PricingService {
	return &PricingService{
		PricingCommandService: NewPricingCommandService(repo, publisher, defaultSteps),
		PricingQueryService:   NewPricingQueryService(repo),
	}
}
