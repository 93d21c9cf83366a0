package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	UpdateProfile(ctx context.Context, id uint64, p ProfileUpdate) error
	Search(ctx context.Context, f SearchFilter) ([]User, error)
}
