package user

import (
	"time"

	domain "smartfarm-credit/internal/domain/user"
)

type ProfileDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	UserType     string    `json:"user_type"`
	FarmName     *string   `json:"farm_name"`
	FarmLocation *string   `json:"farm_location"`
	CropsGrown   *string   `json:"crops_grown"`
	ProfileImage *string   `json:"profile_image"`
	Bio          *string   `json:"bio"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicProfileDTO omits contact details.
type PublicProfileDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	UserType     string    `json:"user_type"`
	FarmName     *string   `json:"farm_name"`
	FarmLocation *string   `json:"farm_location"`
	CropsGrown   *string   `json:"crops_grown"`
	ProfileImage *string   `json:"profile_image"`
	Bio          *string   `json:"bio"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type StatsDTO struct {
	LoansByStatus  map[string]int64 `json:"loans_by_status"`
	TotalLoans     int64            `json:"total_loans"`
	ProductsListed int64            `json:"products_listed"`
	OrdersMade     int64            `json:"orders_made"`
}

func toProfileDTO(u *domain.User) ProfileDTO {
	return ProfileDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		UserType:     string(u.Role),
		FarmName:     u.FarmName,
		FarmLocation: u.FarmLocation,
		CropsGrown:   u.CropsGrown,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

func toPublicDTO(u *domain.User) PublicProfileDTO {
	return PublicProfileDTO{
		ID:           u.ID,
		Name:         u.Name,
		UserType:     string(u.Role),
		FarmName:     u.FarmName,
		FarmLocation: u.FarmLocation,
		CropsGrown:   u.CropsGrown,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}
