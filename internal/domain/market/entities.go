package market

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrForbidden         = errors.New("access denied")
	ErrInsufficientStock = errors.New("insufficient quantity available")
	ErrProductNotForSale = errors.New("product is not available")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
	ProductExpired   ProductStatus = "expired"
)

// Table: marketplace_products
type Product struct {
	ID           uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	FarmerID     uint64          `gorm:"column:farmer_id;not null;index"`
	ProductName  string          `gorm:"column:product_name;type:varchar(128);not null"`
	Description  string          `gorm:"column:description;type:text"`
	CropType     string          `gorm:"column:crop_type;type:varchar(64);not null;index"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:decimal(20,3);not null"`
	Unit         string          `gorm:"column:unit;type:varchar(32);not null"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:decimal(20,2);not null"`
	HarvestDate  *datatypes.Date `gorm:"column:harvest_date"`
	Location     string          `gorm:"column:location;type:varchar(255)"`
	ImageURL     string          `gorm:"column:image_url;type:text"`
	Status       ProductStatus   `gorm:"column:status;type:varchar(16);not null;default:'available';index"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	// Joined for listings; not a column.
	FarmerName string `gorm:"->;-:migration;column:farmer_name"`
}

func (Product) TableName() string { return "marketplace_products" }

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Table: orders
type Order struct {
	ID              uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	OrderNo         string          `gorm:"column:order_no;type:char(26);not null;uniqueIndex:ux_orders_order_no"`
	BuyerID         uint64          `gorm:"column:buyer_id;not null;index"`
	ProductID       uint64          `gorm:"column:product_id;not null;index"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:decimal(20,3);not null"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:decimal(20,2);not null"`
	DeliveryAddress string          `gorm:"column:delivery_address;type:text;not null"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(16);not null;default:'pending'"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;type:varchar(16);not null;default:'pending'"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type ProductFilter struct {
	CropType string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Location string
}

// ProductUpdate holds the mutable listing fields; nil means unchanged.
type ProductUpdate struct {
	Quantity     *decimal.Decimal
	PricePerUnit *decimal.Decimal
	Status       *ProductStatus
}
