package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	userDomain "smartfarm-credit/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return r.update(ctx, id, map[string]any{"password": hash})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint64, p userDomain.ProfileUpdate) error {
	cols := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", p.Name)
	set("phone", p.Phone)
	set("farm_name", p.FarmName)
	set("farm_location", p.FarmLocation)
	set("crops_grown", p.CropsGrown)
	set("bio", p.Bio)
	return r.update(ctx, id, cols)
}

func (r *UserRepository) update(ctx context.Context, id uint64, cols map[string]any) error {
	cols["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, f userDomain.SearchFilter) ([]userDomain.User, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if f.Role != "" {
		q = q.Where("user_type = ?", f.Role)
	} else {
		q = q.Where("user_type IN ?", []userDomain.Role{userDomain.RoleFarmer, userDomain.RoleBuyer})
	}
	if f.Location != "" {
		q = q.Where("farm_location LIKE ?", "%"+f.Location+"%")
	}
	if f.Crop != "" {
		q = q.Where("crops_grown LIKE ?", "%"+f.Crop+"%")
	}
	limit := f.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	var out []userDomain.User
	err := q.Order("id").Limit(limit).Find(&out).Error
	return out, err
}
