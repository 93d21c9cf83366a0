package marketmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "smartfarm-credit/internal/domain/market"
)

var (
	_ domain.ProductRepository = (*Products)(nil)
	_ domain.OrderRepository   = (*Orders)(nil)
)

// Products is a function-backed mock that satisfies domain.ProductRepository.
type Products struct {
	CreateFn        func(ctx context.Context, p *domain.Product) error
	GetByIDFn       func(ctx context.Context, id uint64) (*domain.Product, error)
	ListAvailableFn func(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	ListByFarmerFn  func(ctx context.Context, farmerID uint64) ([]domain.Product, error)
	CountByFarmerFn func(ctx context.Context, farmerID uint64) (int64, error)
	SaveFn          func(ctx context.Context, p *domain.Product) error
	DeleteFn        func(ctx context.Context, id uint64) error
	ReserveFn       func(ctx context.Context, id uint64, qty decimal.Decimal) (bool, error)
}

func (m *Products) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Products) GetByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *Products) ListAvailable(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if m.ListAvailableFn != nil {
		return m.ListAvailableFn(ctx, f)
	}
	return nil, nil
}

func (m *Products) ListByFarmer(ctx context.Context, farmerID uint64) ([]domain.Product, error) {
	if m.ListByFarmerFn != nil {
		return m.ListByFarmerFn(ctx, farmerID)
	}
	return nil, nil
}

func (m *Products) CountByFarmer(ctx context.Context, farmerID uint64) (int64, error) {
	if m.CountByFarmerFn != nil {
		return m.CountByFarmerFn(ctx, farmerID)
	}
	return 0, nil
}

func (m *Products) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Products) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Products) Reserve(ctx context.Context, id uint64, qty decimal.Decimal) (bool, error) {
	if m.ReserveFn != nil {
		return m.ReserveFn(ctx, id, qty)
	}
	return false, nil
}

// Orders is a function-backed mock that satisfies domain.OrderRepository.
type Orders struct {
	CreateFn       func(ctx context.Context, o *domain.Order) error
	ListByBuyerFn  func(ctx context.Context, buyerID uint64) ([]domain.Order, error)
	CountByBuyerFn func(ctx context.Context, buyerID uint64) (int64, error)
}

func (m *Orders) Create(ctx context.Context, o *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Orders) ListByBuyer(ctx context.Context, buyerID uint64) ([]domain.Order, error) {
	if m.ListByBuyerFn != nil {
		return m.ListByBuyerFn(ctx, buyerID)
	}
	return nil, nil
}

func (m *Orders) CountByBuyer(ctx context.Context, buyerID uint64) (int64, error) {
	if m.CountByBuyerFn != nil {
		return m.CountByBuyerFn(ctx, buyerID)
	}
	return 0, nil
}
