package backend

import (
	"context"
	"errors"
	"log/slog"

	"promenu/internal/domain/tenant"
	"promenu/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenantStore is the postgres implementation of the tenant side of the
// external data backend.
type TenantStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewTenantStore(pool *pgxpool.Pool, logger *slog.Logger) *TenantStore {
	return &TenantStore{pool: pool, logger: logger}
}

const tenantColumns = `id, name, description, owner_emails, image_url, created_at, updated_at`

func (s *TenantStore) GetTenant(ctx context.Context, id tenant.ID) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, string(id))

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapBackendErr(s.logger, infra.KindNotFound, "tenant not found", err)
		}
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to get tenant", err)
	}
	return t, nil
}

func (s *TenantStore) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY name`)
	if err != nil {
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to list tenants", err)
	}
	defer rows.Close()

	var result []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to scan tenant", err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to iterate tenants", err)
	}
	return result, nil
}

func (s *TenantStore) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, description, owner_emails, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		string(t.ID), t.Name, t.Description, []string(t.OwnerEmails), t.ImageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapBackendErr(s.logger, infra.KindDuplicateKey, "tenant id already taken", err)
		}
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to create tenant", err)
	}
	return nil
}

func (s *TenantStore) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, description = $3, owner_emails = $4, image_url = $5, updated_at = now()
		 WHERE id = $1`,
		string(t.ID), t.Name, t.Description, []string(t.OwnerEmails), t.ImageURL)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to update tenant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapBackendErr(s.logger, infra.KindNotFound, "tenant not found", pgx.ErrNoRows)
	}
	return nil
}

func (s *TenantStore) DeleteTenant(ctx context.Context, id tenant.ID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, string(id))
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to delete tenant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapBackendErr(s.logger, infra.KindNotFound, "tenant not found", pgx.ErrNoRows)
	}
	return nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var id string
	var owners []string
	err := row.Scan(&id, &t.Name, &t.Description, &owners, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.ID = tenant.ID(id)
	t.OwnerEmails = tenant.OwnerEmails(owners)
	return &t, nil
}
