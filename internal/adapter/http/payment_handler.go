package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount        json.Number `json:"amount"         validate:"required,money"`
	PaymentMethod string      `json:"payment_method" validate:"required,max=32"`
	TransactionID string      `json:"transaction_id" validate:"omitempty,max=128"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req recordPaymentReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	in := payment.RecordInput{
		LoanID:        id,
		Amount:        dec(req.Amount),
		PaymentMethod: req.PaymentMethod,
	}
	if tx := strings.TrimSpace(req.TransactionID); tx != "" {
		in.TransactionID = &tx
	}
	dto, err := h.uc.Record(c.Request().Context(), mw.ActorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
