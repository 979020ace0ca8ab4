package usecase

import (
	"context"
	"errors"

	"promenu/internal/domain/tenant"
	"promenu/internal/infra"
	"promenu/internal/pkg/errs"
	"promenu/internal/pkg/jwt"
	"promenu/internal/pkg/password"
)

// AuthUseCase exchanges owner credentials for an identity token. The token's
// email claim is the only identity fact the data layer reads.
type AuthUseCase interface {
	Login(ctx context.Context, email, rawPassword string) (string, *tenant.Identity, error)
	Register(ctx context.Context, email, rawPassword string) error
}

type authUseCase struct {
	accounts AccountBackend
	jwt      *jwt.Service
}

func NewAuthUseCase(accounts AccountBackend, jwtService *jwt.Service) AuthUseCase {
	return &authUseCase{accounts: accounts, jwt: jwtService}
}

func (uc *authUseCase) Login(ctx context.Context, email, rawPassword string) (string, *tenant.Identity, error) {
	account, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same answer as a bad password; existence is not leaked.
			return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return "", nil, errs.Mark(err, errs.ErrBackendFailure)
	}

	if err := password.ComparePassword(account.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrPasswordMismatch) || errors.Is(err, password.ErrInvalidPassword) {
			return "", nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return "", nil, err
	}

	token, err := uc.jwt.GenerateToken(account.Email)
	if err != nil {
		return "", nil, errs.Wrap(err, "failed to issue token")
	}

	return token, &tenant.Identity{Email: account.Email}, nil
}

func (uc *authUseCase) Register(ctx context.Context, email, rawPassword string) error {
	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return err
	}
	if err := uc.accounts.Create(ctx, email, hash); err != nil {
		return errs.Mark(err, errs.ErrBackendFailure)
	}
	return nil
}
