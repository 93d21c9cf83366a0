package market

import (
	"time"

	"github.com/shopspring/decimal"

	domain "smartfarm-credit/internal/domain/market"
)

type CreateProductInput struct {
	ProductName  string
	Description  string
	CropType     string
	Quantity     decimal.Decimal
	Unit         string
	PricePerUnit decimal.Decimal
	HarvestDate  *time.Time
	Location     string
	ImageURL     string
}

type CreateOrderInput struct {
	ProductID       uint64
	Quantity        decimal.Decimal
	DeliveryAddress string
}

type ProductDTO struct {
	ID           uint64    `json:"id"`
	FarmerID     uint64    `json:"farmer_id"`
	FarmerName   string    `json:"farmer_name,omitempty"`
	ProductName  string    `json:"product_name"`
	Description  string    `json:"description"`
	CropType     string    `json:"crop_type"`
	Quantity     string    `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit string    `json:"price_per_unit"`
	HarvestDate  *string   `json:"harvest_date"`
	Location     string    `json:"location"`
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderDTO struct {
	ID              uint64      `json:"id"`
	OrderNo         string      `json:"order_no"`
	ProductID       uint64      `json:"product_id"`
	Quantity        string      `json:"quantity"`
	TotalPrice      string      `json:"total_price"`
	DeliveryAddress string      `json:"delivery_address"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	CreatedAt       time.Time   `json:"created_at"`
	Product         *ProductDTO `json:"product,omitempty"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	dto := ProductDTO{
		ID:           p.ID,
		FarmerID:     p.FarmerID,
		FarmerName:   p.FarmerName,
		ProductName:  p.ProductName,
		Description:  p.Description,
		CropType:     p.CropType,
		Quantity:     p.Quantity.String(),
		Unit:         p.Unit,
		PricePerUnit: p.PricePerUnit.StringFixed(2),
		Location:     p.Location,
		ImageURL:     p.ImageURL,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
	if p.HarvestDate != nil {
		s := time.Time(*p.HarvestDate).Format("2006-01-02")
		dto.HarvestDate = &s
	}
	return dto
}

func toOrderDTO(o *domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity.String(),
		TotalPrice:      o.TotalPrice.StringFixed(2),
		DeliveryAddress: o.DeliveryAddress,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		CreatedAt:       o.CreatedAt,
	}
	if o.Product != nil {
		p := toProductDTO(o.Product)
		dto.Product = &p
	}
	return dto
}
