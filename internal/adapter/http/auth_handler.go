package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/domain/user"
	"smartfarm-credit/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Name         string `json:"name"          validate:"required,max=128"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Password     string `json:"password"      validate:"required,min=8,max=72"`
	Phone        string `json:"phone"         validate:"omitempty,max=32"`
	UserType     string `json:"user_type"     validate:"required,oneof=farmer buyer"`
	FarmName     string `json:"farm_name"     validate:"omitempty,max=128"`
	FarmLocation string `json:"farm_location" validate:"omitempty,max=255"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         user.Role(req.UserType),
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Verify returns the user behind the bearer token.
func (h *AuthHandler) Verify(c echo.Context) error {
	dto, err := h.uc.Me(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": true, "user": dto})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.uc.ChangePassword(c.Request().Context(), mw.ActorFrom(c), req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := mw.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	if err := h.uc.Logout(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
