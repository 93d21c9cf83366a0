package usermock

import (
	"context"

	domain "smartfarm-credit/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, id uint64, hash string) error
	UpdateProfileFn  func(ctx context.Context, id uint64, p domain.ProfileUpdate) error
	SearchFn         func(ctx context.Context, f domain.SearchFilter) ([]domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (m *Repo) UpdateProfile(ctx context.Context, id uint64, p domain.ProfileUpdate) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, p)
	}
	return nil
}

func (m *Repo) Search(ctx context.Context, f domain.SearchFilter) ([]domain.User, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, f)
	}
	return nil, nil
}
