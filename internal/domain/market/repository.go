package market

import (
	"context"

	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint64) (*Product, error)
	ListAvailable(ctx context.Context, f ProductFilter) ([]Product, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]Product, error)
	CountByFarmer(ctx context.Context, farmerID uint64) (int64, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint64) error
	// Reserve decrements stock only if enough remains; false when it did not.
	Reserve(ctx context.Context, id uint64, qty decimal.Decimal) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	ListByBuyer(ctx context.Context, buyerID uint64) ([]Order, error)
	CountByBuyer(ctx context.Context, buyerID uint64) (int64, error)
}
