package backend

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"promenu/internal/infra"
	"promenu/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAccountStore(pool *pgxpool.Pool, logger *slog.Logger) *AccountStore {
	return &AccountStore{pool: pool, logger: logger}
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*usecase.Account, error) {
	var a usecase.Account
	err := s.pool.QueryRow(ctx,
		`SELECT email, password_hash FROM accounts WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)).
		Scan(&a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapBackendErr(s.logger, infra.KindNotFound, "account not found", err)
		}
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to find account", err)
	}
	return &a, nil
}

func (s *AccountStore) Create(ctx context.Context, email, passwordHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (email, password_hash, created_at) VALUES ($1, $2, now())`,
		strings.TrimSpace(email), passwordHash)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to create account", err)
	}
	return nil
}
