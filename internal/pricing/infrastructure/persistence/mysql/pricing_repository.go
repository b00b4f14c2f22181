package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
)

// PricingRepository 定价结果仓储的 MySQL 实现
type PricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository 创建新的 PricingRepository 实例
func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) SavePricingResult(ctx context.Context, result *domain.PricingResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *PricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var result domain.PricingResult
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at DESC, id DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPricingResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *PricingRepository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var results []*domain.PricingResult
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at DESC, id DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
