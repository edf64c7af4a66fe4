package models

import (
	"encoding/json"
	"time"
)

// BarcodeCache stores a looked-up product payload so repeated scans of the
// same barcode skip the upstream Open Food Facts call. Upsert-on-miss, no
// eviction policy.
type BarcodeCache struct {
	Barcode     string          `db:"barcode"`
	ProductData json.RawMessage `db:"product_data"`
	CachedAt    time.Time       `db:"cached_at"`
}
