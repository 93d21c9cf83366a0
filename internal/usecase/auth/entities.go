package auth

import (
	"time"

	"smartfarm-credit/internal/domain/user"
)

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Role         user.Role
	FarmName     string
	FarmLocation string
}

type UserDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	UserType     string    `json:"user_type"`
	FarmName     *string   `json:"farm_name"`
	FarmLocation *string   `json:"farm_location"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		UserType:     string(u.Role),
		FarmName:     u.FarmName,
		FarmLocation: u.FarmLocation,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}
