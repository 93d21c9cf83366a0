package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	domain "smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	Amount              json.Number `json:"amount"                validate:"required,money,decmin=1000"`
	DurationMonths      int         `json:"duration_months"       validate:"required,gte=1,lte=120"`
	LoanType            string      `json:"loan_type"             validate:"required,oneof=seasonal equipment land emergency"`
	Purpose             string      `json:"purpose"               validate:"omitempty,max=1000"`
	CropSeason          string      `json:"crop_season"           validate:"required,max=64"`
	ExpectedHarvestDate string      `json:"expected_harvest_date" validate:"required,datetime=2006-01-02"`
	CollateralValue     json.Number `json:"collateral_value"      validate:"omitempty,decimal"`
}

type quoteReq struct {
	Amount         json.Number `query:"amount"          validate:"required,money"`
	DurationMonths int         `query:"duration_months" validate:"required,gte=1,lte=120"`
	LoanType       string      `query:"loan_type"       validate:"omitempty,oneof=seasonal equipment land emergency"`
}

type listLoansReq struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected active completed defaulted"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	harvest, _ := time.Parse("2006-01-02", req.ExpectedHarvestDate)
	in := loan.ApplyInput{
		Principal:           dec(req.Amount),
		DurationMonths:      req.DurationMonths,
		LoanType:            domain.Category(req.LoanType),
		Purpose:             req.Purpose,
		CropSeason:          req.CropSeason,
		ExpectedHarvestDate: harvest,
	}
	if req.CollateralValue != "" {
		v := dec(req.CollateralValue)
		in.CollateralValue = &v
	}
	dto, err := h.uc.Apply(c.Request().Context(), mw.ActorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll is the admin view, optionally filtered by ?status=.
func (h *LoanHandler) ListAll(c echo.Context) error {
	var req listLoansReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	out, err := h.uc.ListAll(c.Request().Context(), mw.ActorFrom(c), domain.Status(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	dto, err := h.uc.Get(c.Request().Context(), mw.ActorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Quote(c echo.Context) error {
	var req quoteReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Quote(dec(req.Amount), req.DurationMonths, domain.Category(req.LoanType))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	out, err := h.uc.Schedule(c.Request().Context(), mw.ActorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
