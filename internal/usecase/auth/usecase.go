package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"smartfarm-credit/internal/domain/user"
)

type TokenIssuer interface {
	Issue(u *user.User) (token string, expiresAt time.Time, err error)
}

type Revoker interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
}

type Usecase struct {
	users   user.Repository
	tokens  TokenIssuer
	revoked Revoker
	cost    int
	now     func() time.Time
}

func NewUsecase(users user.Repository, tokens TokenIssuer, revoked Revoker) *Usecase {
	return &Usecase{users: users, tokens: tokens, revoked: revoked, cost: bcrypt.DefaultCost, now: time.Now}
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Register creates a farmer or buyer account and signs the user in.
// Admin accounts cannot be self-registered.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*SessionDTO, error) {
	if in.Role != user.RoleFarmer && in.Role != user.RoleBuyer {
		return nil, user.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, err
	}
	usr := &user.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Phone:        optional(in.Phone),
		Role:         in.Role,
		FarmName:     optional(in.FarmName),
		FarmLocation: optional(in.FarmLocation),
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return u.session(usr)
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*SessionDTO, error) {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrInvalidCredentials
	}
	return u.session(usr)
}

// Me returns the account behind a verified token.
func (u *Usecase) Me(ctx context.Context, actor user.Actor) (*UserDTO, error) {
	usr, err := u.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(usr)
	return &dto, nil
}

func (u *Usecase) ChangePassword(ctx context.Context, actor user.Actor, oldPassword, newPassword string) error {
	usr, err := u.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(oldPassword)) != nil {
		return user.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.cost)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, actor.ID, string(hash))
}

// Logout revokes the token id until the token would have expired.
func (u *Usecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return u.revoked.Add(ctx, jti, expiresAt.Sub(u.now()))
}

func (u *Usecase) session(usr *user.User) (*SessionDTO, error) {
	tok, exp, err := u.tokens.Issue(usr)
	if err != nil {
		return nil, err
	}
	return &SessionDTO{Token: tok, ExpiresAt: exp, User: toUserDTO(usr)}, nil
}
