package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/jwt"
	ucauth "github.com/hamzahalilovic/social-network-developers/internal/usecase/auth"
)

var ErrInternal = errors.New("internal error")

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (string, error)
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
}

// Auth wraps the credential service with token issuance: register and login
// both resolve to a signed bearer token.
type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return "", err
	}

	token, err := u.jwt.Generate(usr.ID)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return "", err
	}

	token, err := u.jwt.Generate(usr.ID)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}

func (u *Auth) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.authSvc.GetMe(ctx, userID)
}
