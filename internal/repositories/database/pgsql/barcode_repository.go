package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type PgxBarcodeRepository struct {
	BaseRepository
}

func newPgxBarcodeRepository(db *pgxpool.Pool) portsrepo.BarcodeCacheRepositoryFacade {
	return &PgxBarcodeRepository{BaseRepository{Pool: db}}
}

// Ensure PgxBarcodeRepository implements portsrepo.BarcodeCacheRepositoryFacade
var _ portsrepo.BarcodeCacheRepositoryFacade = (*PgxBarcodeRepository)(nil)

func (r *PgxBarcodeRepository) FindCachedProduct(ctx context.Context, barcode string) (*models.BarcodeCache, error) {
	query := `
		SELECT barcode, product_data, cached_at
		FROM barcode_cache
		WHERE barcode = $1;
	`
	var cache models.BarcodeCache
	err := r.Pool.QueryRow(ctx, query, barcode).Scan(&cache.Barcode, &cache.ProductData, &cache.CachedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cached product: %w", err)
	}
	return &cache, nil
}

func (r *PgxBarcodeRepository) SaveCachedProduct(ctx context.Context, cache models.BarcodeCache) error {
	query := `
		INSERT INTO barcode_cache (barcode, product_data, cached_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (barcode) DO UPDATE
		SET product_data = EXCLUDED.product_data,
		    cached_at = EXCLUDED.cached_at;
	`
	_, err := r.Pool.Exec(ctx, query, cache.Barcode, cache.ProductData, cache.CachedAt)
	if err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}
	return nil
}

func (r *PgxBarcodeRepository) DeleteCachedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM barcode_cache WHERE cached_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to evict barcode cache: %w", err)
	}
	return tag.RowsAffected(), nil
}
