package market

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"

	domain "smartfarm-credit/internal/domain/market"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/domain/user"
)

type Usecase struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	uow      uow.UnitOfWork
	newID    func() string
}

func NewUsecase(products domain.ProductRepository, orders domain.OrderRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		products: products,
		orders:   orders,
		uow:      tx,
		newID:    func() string { return ulid.Make().String() },
	}
}

func (u *Usecase) ListProducts(ctx context.Context, f domain.ProductFilter) ([]ProductDTO, error) {
	ps, err := u.products.ListAvailable(ctx, f)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(ps), nil
}

func (u *Usecase) GetProduct(ctx context.Context, id uint64) (*ProductDTO, error) {
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(p)
	return &dto, nil
}

func (u *Usecase) ListMyProducts(ctx context.Context, actor user.Actor) ([]ProductDTO, error) {
	ps, err := u.products.ListByFarmer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(ps), nil
}

// CreateProduct lists produce for sale. Farmers and admins only.
func (u *Usecase) CreateProduct(ctx context.Context, actor user.Actor, in CreateProductInput) (*ProductDTO, error) {
	if actor.Role != user.RoleFarmer && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !in.Quantity.IsPositive() || !in.PricePerUnit.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	p := &domain.Product{
		FarmerID:     actor.ID,
		ProductName:  strings.TrimSpace(in.ProductName),
		Description:  in.Description,
		CropType:     strings.TrimSpace(in.CropType),
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		Location:     in.Location,
		ImageURL:     in.ImageURL,
		Status:       domain.ProductAvailable,
	}
	if in.HarvestDate != nil {
		hd := datatypes.Date(in.HarvestDate.UTC())
		p.HarvestDate = &hd
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, err
	}
	dto := toProductDTO(p)
	return &dto, nil
}

func (u *Usecase) UpdateProduct(ctx context.Context, actor user.Actor, id uint64, up domain.ProductUpdate) (*ProductDTO, error) {
	p, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if up.Quantity != nil {
		if up.Quantity.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		p.Quantity = *up.Quantity
	}
	if up.PricePerUnit != nil {
		if !up.PricePerUnit.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		p.PricePerUnit = *up.PricePerUnit
	}
	if up.Status != nil {
		p.Status = *up.Status
	}
	if err := u.products.Save(ctx, p); err != nil {
		return nil, err
	}
	dto := toProductDTO(p)
	return &dto, nil
}

func (u *Usecase) DeleteProduct(ctx context.Context, actor user.Actor, id uint64) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	return u.products.Delete(ctx, id)
}

// CreateOrder reserves stock and records the order in one transaction. The
// listing flips to sold when the last unit goes.
func (u *Usecase) CreateOrder(ctx context.Context, actor user.Actor, in CreateOrderInput) (*OrderDTO, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	var out *OrderDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p.Status != domain.ProductAvailable {
			return domain.ErrProductNotForSale
		}
		if p.FarmerID == actor.ID {
			return domain.ErrForbidden
		}
		ok, err := r.Products.Reserve(ctx, p.ID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}

		// re-read: our decrement holds the row now
		p, err = r.Products.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if !p.Quantity.IsPositive() {
			p.Status = domain.ProductSold
			if err := r.Products.Save(ctx, p); err != nil {
				return err
			}
		}

		o := &domain.Order{
			OrderNo:         u.newID(),
			BuyerID:         actor.ID,
			ProductID:       p.ID,
			Quantity:        in.Quantity,
			TotalPrice:      in.Quantity.Mul(p.PricePerUnit).Round(2),
			DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
			Status:          domain.OrderPending,
			PaymentStatus:   domain.PaymentPending,
			CreatedAt:       time.Now().UTC(),
		}
		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}
		o.Product = p
		dto := toOrderDTO(o)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListOrders(ctx context.Context, actor user.Actor) ([]OrderDTO, error) {
	os, err := u.orders.ListByBuyer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderDTO, 0, len(os))
	for i := range os {
		out = append(out, toOrderDTO(&os[i]))
	}
	return out, nil
}

func (u *Usecase) owned(ctx context.Context, actor user.Actor, id uint64) (*domain.Product, error) {
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(p.FarmerID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func toProductDTOs(ps []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for i := range ps {
		out = append(out, toProductDTO(&ps[i]))
	}
	return out
}
