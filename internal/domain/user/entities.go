package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrInvalidRole        = errors.New("role not allowed")
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

// Table: users
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	Name         string    `gorm:"column:name;type:varchar(128);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	Phone        *string   `gorm:"column:phone;type:varchar(32)"`
	Role         Role      `gorm:"column:user_type;type:varchar(16);not null;index"`
	FarmName     *string   `gorm:"column:farm_name;type:varchar(128)"`
	FarmLocation *string   `gorm:"column:farm_location;type:varchar(255)"`
	CropsGrown   *string   `gorm:"column:crops_grown;type:text"`
	ProfileImage *string   `gorm:"column:profile_image;type:text"`
	Bio          *string   `gorm:"column:bio;type:text"`
	IsVerified   bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// Actor is the authenticated caller, as decoded from the bearer token.
type Actor struct {
	ID   uint64
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccess reports whether the actor owns the resource or is an admin.
func (a Actor) CanAccess(ownerID uint64) bool { return a.IsAdmin() || a.ID == ownerID }

// ProfileUpdate carries the optional fields of a partial profile update.
type ProfileUpdate struct {
	Name         *string
	Phone        *string
	FarmName     *string
	FarmLocation *string
	CropsGrown   *string
	Bio          *string
}

type SearchFilter struct {
	Role     Role
	Location string
	Crop     string
	Limit    int
}
