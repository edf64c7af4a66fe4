package repositories

import (
	"context"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/models"
)

// BarcodeCacheRepositoryFacade caches Open Food Facts lookups so repeat scans
// of the same product skip the upstream call.
type BarcodeCacheRepositoryFacade interface {
	// FindCachedProduct returns the cached record for a barcode, or nil when
	// the barcode has never been looked up.
	FindCachedProduct(ctx context.Context, barcode string) (*models.BarcodeCache, error)

	// SaveCachedProduct upserts the cached record for a barcode.
	SaveCachedProduct(ctx context.Context, cache models.BarcodeCache) error

	// DeleteCachedBefore evicts cache rows older than the cutoff.
	DeleteCachedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
