package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/market"
	"smartfarm-credit/internal/domain/review"
	"smartfarm-credit/internal/domain/user"
)

// Map domain errors → HTTP codes. First match wins.
var errorStatus = []struct {
	err  error
	code int
}{
	{loan.ErrNotFound, http.StatusNotFound},
	{review.ErrNotFound, http.StatusNotFound},
	{user.ErrNotFound, http.StatusNotFound},
	{market.ErrProductNotFound, http.StatusNotFound},

	{loan.ErrForbidden, http.StatusForbidden},
	{market.ErrForbidden, http.StatusForbidden},

	{loan.ErrAlreadyApproved, http.StatusConflict},
	{loan.ErrInvalidTransition, http.StatusConflict},
	{loan.ErrNotPayable, http.StatusConflict},
	{loan.ErrDuplicateTransaction, http.StatusConflict},
	{user.ErrEmailTaken, http.StatusConflict},
	{market.ErrProductNotForSale, http.StatusConflict},

	{loan.ErrOverpayment, http.StatusUnprocessableEntity},
	{loan.ErrInvalidSchedule, http.StatusUnprocessableEntity},
	{loan.ErrReasonRequired, http.StatusUnprocessableEntity},
	{loan.ErrInvalidApplication, http.StatusUnprocessableEntity},
	{loan.ErrInvalidPayment, http.StatusUnprocessableEntity},
	{user.ErrInvalidRole, http.StatusUnprocessableEntity},
	{market.ErrInsufficientStock, http.StatusUnprocessableEntity},
	{market.ErrInvalidQuantity, http.StatusUnprocessableEntity},

	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{user.ErrWrongPassword, http.StatusBadRequest},
}

// respondError writes the mapped status for known domain errors. Anything else
// is logged and hidden behind a generic 500.
func respondError(c echo.Context, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.JSON(m.code, ErrorResponse{Error: m.err.Error()})
		}
	}
	zap.L().Error("request failed",
		zap.String("request_id", mw.RequestID(c)),
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
