package persistence

import (
	"context"

	"gorm.io/gorm"

	marketDomain "smartfarm-credit/internal/domain/market"
)

type OrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

func (r *OrderRepository) Create(ctx context.Context, o *marketDomain.Order) error {
	return r.db.WithContext(ctx).Omit("Product").Create(o).Error
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]marketDomain.Order, error) {
	var out []marketDomain.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) CountByBuyer(ctx context.Context, buyerID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&marketDomain.Order{}).Where("buyer_id = ?", buyerID).Count(&n).Error
	return n, err
}
