package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	marketDomain "smartfarm-credit/internal/domain/market"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *marketDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) withFarmer(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&marketDomain.Product{}).
		Select("marketplace_products.*, users.name AS farmer_name").
		Joins("LEFT JOIN users ON users.id = marketplace_products.farmer_id")
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*marketDomain.Product, error) {
	var out marketDomain.Product
	err := r.withFarmer(ctx).Where("marketplace_products.id = ?", id).First(&out).Error
	if err != nil {
		return nil, notFound(err, marketDomain.ErrProductNotFound)
	}
	return &out, nil
}

func (r *ProductRepository) ListAvailable(ctx context.Context, f marketDomain.ProductFilter) ([]marketDomain.Product, error) {
	q := r.withFarmer(ctx).Where("marketplace_products.status = ?", marketDomain.ProductAvailable)
	if f.CropType != "" {
		q = q.Where("marketplace_products.crop_type = ?", f.CropType)
	}
	if f.MinPrice != nil {
		q = q.Where("marketplace_products.price_per_unit >= ?", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q = q.Where("marketplace_products.price_per_unit <= ?", f.MaxPrice.String())
	}
	if f.Location != "" {
		q = q.Where("marketplace_products.location LIKE ?", "%"+f.Location+"%")
	}
	var out []marketDomain.Product
	err := q.Order("marketplace_products.created_at DESC, marketplace_products.id DESC").Find(&out).Error
	return out, err
}

func (r *ProductRepository) ListByFarmer(ctx context.Context, farmerID uint64) ([]marketDomain.Product, error) {
	var out []marketDomain.Product
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProductRepository) CountByFarmer(ctx context.Context, farmerID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&marketDomain.Product{}).Where("farmer_id = ?", farmerID).Count(&n).Error
	return n, err
}

func (r *ProductRepository) Save(ctx context.Context, p *marketDomain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&marketDomain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return marketDomain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Reserve(ctx context.Context, id uint64, qty decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&marketDomain.Product{}).
		Where("id = ? AND status = ? AND quantity >= CAST(? AS DECIMAL(20,3))", id, marketDomain.ProductAvailable, qty.String()).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - CAST(? AS DECIMAL(20,3))", qty.String()),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
