package user

import (
	"context"

	"smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/market"
	domain "smartfarm-credit/internal/domain/user"
)

const maxSearchResults = 50

type Usecase struct {
	users    domain.Repository
	loans    loan.Repository
	products market.ProductRepository
	orders   market.OrderRepository
}

func NewUsecase(users domain.Repository, loans loan.Repository, products market.ProductRepository, orders market.OrderRepository) *Usecase {
	return &Usecase{users: users, loans: loans, products: products, orders: orders}
}

func (u *Usecase) Profile(ctx context.Context, actor domain.Actor) (*ProfileDTO, error) {
	usr, err := u.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	dto := toProfileDTO(usr)
	return &dto, nil
}

// UpdateProfile applies only the fields that are set.
func (u *Usecase) UpdateProfile(ctx context.Context, actor domain.Actor, p domain.ProfileUpdate) (*ProfileDTO, error) {
	if p != (domain.ProfileUpdate{}) {
		if err := u.users.UpdateProfile(ctx, actor.ID, p); err != nil {
			return nil, err
		}
	}
	return u.Profile(ctx, actor)
}

func (u *Usecase) Stats(ctx context.Context, actor domain.Actor) (*StatsDTO, error) {
	counts, err := u.loans.CountByStatus(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := &StatsDTO{LoansByStatus: make(map[string]int64, len(counts))}
	for st, n := range counts {
		out.LoansByStatus[string(st)] = n
		out.TotalLoans += n
	}
	if out.ProductsListed, err = u.products.CountByFarmer(ctx, actor.ID); err != nil {
		return nil, err
	}
	if out.OrdersMade, err = u.orders.CountByBuyer(ctx, actor.ID); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Search(ctx context.Context, f domain.SearchFilter) ([]PublicProfileDTO, error) {
	if f.Role == domain.RoleAdmin {
		return []PublicProfileDTO{}, nil
	}
	if f.Limit <= 0 || f.Limit > maxSearchResults {
		f.Limit = maxSearchResults
	}
	users, err := u.users.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]PublicProfileDTO, 0, len(users))
	for i := range users {
		out = append(out, toPublicDTO(&users[i]))
	}
	return out, nil
}

func (u *Usecase) PublicProfile(ctx context.Context, id uint64) (*PublicProfileDTO, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPublicDTO(usr)
	return &dto, nil
}
