package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/usecase/review"
)

// ReviewHandler serves the admin decisions on a loan.
type ReviewHandler struct{ uc *review.Usecase }

func NewReviewHandler(uc *review.Usecase) *ReviewHandler { return &ReviewHandler{uc: uc} }

type rejectLoanReq struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

func (h *ReviewHandler) Approve(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	dto, err := h.uc.Approve(c.Request().Context(), mw.ActorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req rejectLoanReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), mw.ActorFrom(c), id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) Disburse(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	dto, err := h.uc.Disburse(c.Request().Context(), mw.ActorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
