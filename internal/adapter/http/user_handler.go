package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/domain/user"
	ucuser "smartfarm-credit/internal/usecase/user"
)

type UserHandler struct{ uc *ucuser.Usecase }

func NewUserHandler(uc *ucuser.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type updateProfileReq struct {
	Name         *string `json:"name"          validate:"omitempty,min=1,max=128"`
	Phone        *string `json:"phone"         validate:"omitempty,max=32"`
	FarmName     *string `json:"farm_name"     validate:"omitempty,max=128"`
	FarmLocation *string `json:"farm_location" validate:"omitempty,max=255"`
	CropsGrown   *string `json:"crops_grown"   validate:"omitempty,max=1000"`
	Bio          *string `json:"bio"           validate:"omitempty,max=2000"`
}

type searchUsersReq struct {
	UserType string `query:"user_type" validate:"omitempty,oneof=farmer buyer"`
	Location string `query:"location"  validate:"omitempty,max=255"`
	Crop     string `query:"crop"      validate:"omitempty,max=64"`
	Limit    int    `query:"limit"     validate:"omitempty,gte=1,lte=50"`
}

func (h *UserHandler) Profile(c echo.Context) error {
	dto, err := h.uc.Profile(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateProfile(c.Request().Context(), mw.ActorFrom(c), user.ProfileUpdate(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) Stats(c echo.Context) error {
	dto, err := h.uc.Stats(c.Request().Context(), mw.ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) Search(c echo.Context) error {
	var req searchUsersReq
	if ok, err := decode(c, &req); !ok {
		return err
	}
	out, err := h.uc.Search(c.Request().Context(), user.SearchFilter{
		Role:     user.Role(req.UserType),
		Location: req.Location,
		Crop:     req.Crop,
		Limit:    req.Limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) PublicProfile(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	dto, err := h.uc.PublicProfile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
