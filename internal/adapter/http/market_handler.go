package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	domain "smartfarm-credit/internal/domain/market"
	"smartfarm-credit/internal/usecase/market"
)

type MarketHandler struct{ uc *market.Usecase }

func NewMarketHandler(uc *market.Usecase) *MarketHandler { return &MarketHandler{uc: uc} }

type listProductsReq struct {
	CropType string      `query:"crop_type" validate:"omitempty,max=64"`
	MinPrice json.Number `query:"min_price" validate:"omitempty,decimal"`
	MaxPrice json.Number `query:"max_price" validate:"omitempty,decimal"`
	Location string      `query:"location"  validate:"omitempty,max=255"`
}

type createProductReq struct {
	ProductName  string      `json:"product_name"   validate:"required,max=128"`
	Description  string      `json:"description"    validate:"omitempty,max=2000"`
	CropType     string      `json:"crop_type"      validate:"required,max=64"`
	Quantity     json.Number `json:"quantity"       validate:"required,qty,decmin=0.1"`
	Unit         string      `json:"unit"           validate:"required,max=32"`
	PricePerUnit json.Number `json:"price_per_unit" validate:"required,money"`
	HarvestDate  string      `json:"harvest_date"   validate:"omitempty,datetime=2006-01-02"`
	Location     string      `json:"location"       validate:"required,max=255"`
	ImageURL     string      `json:"image_url"      validate:"omitempty,url"`
}

type updateProductReq struct {
	Quantity     *json.Number `json:"quantity"       validate:"omitempty,decimal"`
	PricePerUnit *json.Number `json:"price_per_unit" validate:"omitempty,money"`
	Status       *string      `json:"status"         validate:"omitempty,oneof=available sold expired"`
}

type createOrderReq struct {
	ProductID       uint64      `json:"product_id"       validate:"required"`
	Quantity        json.Number `json:"quantity"         validate:"required,qty,decmin=0.1"`
	DeliveryAddress string      `json:"delivery_address" validate:"required,max=500"`
}

func (h *MarketHandler) ListProducts(c echo.Context) error {
	var req listProductsReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	f := domain.ProductFilter{CropType: req.CropType, Location: req.Location}
	if req.MinPrice != "" {
		v := dec(req.MinPrice)
		f.MinPrice = &v
	}
	if req.MaxPrice != "" {
		v := dec(req.MaxPrice)
		f.MaxPrice = &v
	}
	out, err := h.uc.ListProducts(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketHandler) GetProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	dto, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketHandler) ListMyProducts(c echo.Context) error {
	out, err := h.uc.ListMyProducts(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketHandler) CreateProduct(c echo.Context) error {
	var req createProductReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	in := market.CreateProductInput{
		ProductName:  req.ProductName,
		Description:  req.Description,
		CropType:     req.CropType,
		Quantity:     dec(req.Quantity),
		Unit:         req.Unit,
		PricePerUnit: dec(req.PricePerUnit),
		Location:     req.Location,
		ImageURL:     req.ImageURL,
	}
	if req.HarvestDate != "" {
		hd, _ := time.Parse("2006-01-02", req.HarvestDate)
		in.HarvestDate = &hd
	}
	dto, err := h.uc.CreateProduct(c.Request().Context(), mw.ActorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketHandler) UpdateProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req updateProductReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	var up domain.ProductUpdate
	if req.Quantity != nil {
		v := dec(*req.Quantity)
		up.Quantity = &v
	}
	if req.PricePerUnit != nil {
		v := dec(*req.PricePerUnit)
		up.PricePerUnit = &v
	}
	if req.Status != nil {
		st := domain.ProductStatus(*req.Status)
		up.Status = &st
	}
	dto, err := h.uc.UpdateProduct(c.Request().Context(), mw.ActorFrom(c), id, up)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketHandler) DeleteProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.uc.DeleteProduct(c.Request().Context(), mw.ActorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MarketHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateOrder(c.Request().Context(), mw.ActorFrom(c), market.CreateOrderInput{
		ProductID:       req.ProductID,
		Quantity:        dec(req.Quantity),
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketHandler) ListOrders(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
