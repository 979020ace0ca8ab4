package backend

import (
	"context"
	"errors"
	"log/slog"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStore is the postgres implementation of the catalog side of the
// external data backend.
type CatalogStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCatalogStore(pool *pgxpool.Pool, logger *slog.Logger) *CatalogStore {
	return &CatalogStore{pool: pool, logger: logger}
}

const itemColumns = `id, tenant_id, name, description, price_cents, image_url, asset_path,
	quantity_type, discount_type, discount_value, created_at, updated_at`

func (s *CatalogStore) ListItems(ctx context.Context, tenantID tenant.ID) ([]catalog.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM catalog_items WHERE tenant_id = $1 ORDER BY created_at`,
		string(tenantID))
	if err != nil {
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to list catalog items", err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to scan catalog item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to iterate catalog items", err)
	}
	return items, nil
}

func (s *CatalogStore) GetItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) (*catalog.Item, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM catalog_items WHERE tenant_id = $1 AND id = $2`,
		string(tenantID), itemID)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapBackendErr(s.logger, infra.KindNotFound, "catalog item not found", err)
		}
		return nil, infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to get catalog item", err)
	}
	return item, nil
}

func (s *CatalogStore) AddItem(ctx context.Context, item *catalog.Item) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO catalog_items
		 (id, tenant_id, name, description, price_cents, image_url, asset_path,
		  quantity_type, discount_type, discount_value, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`,
		item.ID, string(item.TenantID), item.Name, item.Description, item.PriceCents,
		item.ImageURL, item.AssetPath, string(item.QuantityType), string(item.DiscountType),
		item.DiscountValue)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to add catalog item", err)
	}
	return nil
}

func (s *CatalogStore) UpdateItem(ctx context.Context, item *catalog.Item) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE catalog_items SET name = $3, description = $4, price_cents = $5, image_url = $6,
		  asset_path = $7, quantity_type = $8, discount_type = $9, discount_value = $10,
		  updated_at = now()
		 WHERE tenant_id = $1 AND id = $2`,
		string(item.TenantID), item.ID, item.Name, item.Description, item.PriceCents,
		item.ImageURL, item.AssetPath, string(item.QuantityType), string(item.DiscountType),
		item.DiscountValue)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to update catalog item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapBackendErr(s.logger, infra.KindNotFound, "catalog item not found", pgx.ErrNoRows)
	}
	return nil
}

func (s *CatalogStore) DeleteItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM catalog_items WHERE tenant_id = $1 AND id = $2`,
		string(tenantID), itemID)
	if err != nil {
		return infra.WrapBackendErr(s.logger, infra.KindDBFailure, "failed to delete catalog item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapBackendErr(s.logger, infra.KindNotFound, "catalog item not found", pgx.ErrNoRows)
	}
	return nil
}

func scanItem(row pgx.Row) (*catalog.Item, error) {
	var item catalog.Item
	var tenantID, quantityType, discountType string
	err := row.Scan(&item.ID, &tenantID, &item.Name, &item.Description, &item.PriceCents,
		&item.ImageURL, &item.AssetPath, &quantityType, &discountType, &item.DiscountValue,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.TenantID = tenant.ID(tenantID)
	item.QuantityType = catalog.QuantityType(quantityType).Normalize()
	item.DiscountType = catalog.DiscountType(discountType).Normalize()
	return &item, nil
}
