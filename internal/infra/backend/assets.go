package backend

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"promenu/internal/infra"
	"promenu/internal/pkg/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetStore keeps binary assets (item photos) addressable by path and hands
// out retrievable URLs. The original deployment used a storage bucket; the
// contract here is call-level only, so a table works just as well.
type AssetStore struct {
	pool    *pgxpool.Pool
	baseURL string
	logger  *slog.Logger
}

func NewAssetStore(pool *pgxpool.Pool, cfg config.AssetsConfig, logger *slog.Logger) *AssetStore {
	return &AssetStore{
		pool:    pool,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

func (s *AssetStore) Store(ctx context.Context, path, contentType string, data []byte) (string, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO assets (path, content_type, data, created_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (path) DO UPDATE SET content_type = $2, data = $3`,
		path, contentType, data)
	if err != nil {
		return "", infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to store asset", err)
	}
	return s.URLFor(path), nil
}

func (s *AssetStore) Retrieve(ctx context.Context, path string) ([]byte, string, error) {
	var data []byte
	var contentType string
	err := s.pool.QueryRow(ctx,
		`SELECT data, content_type FROM assets WHERE path = $1`, path).
		Scan(&data, &contentType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapBackendErr(s.logger, infra.KindNotFound, "asset not found", err)
		}
		return nil, "", infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to retrieve asset", err)
	}
	return data, contentType, nil
}

func (s *AssetStore) Delete(ctx context.Context, path string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM assets WHERE path = $1`, path)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to delete asset", err)
	}
	return nil
}

func (s *AssetStore) URLFor(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}
