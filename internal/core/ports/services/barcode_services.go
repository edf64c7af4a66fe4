package services

import (
	"context"

	"github.com/mainmeal/mainmeal_backend/internal/dto"
)

// BarcodeSvcFacade looks up scanned products and checks them for the family.
type BarcodeSvcFacade interface {
	// LookupProduct fetches a product by barcode, serving from cache when the
	// barcode was seen recently.
	LookupProduct(ctx context.Context, barcode string) (*dto.BarcodeProduct, error)

	// AnalyzeProduct looks up the product and runs its ingredient list
	// through the family safety analysis.
	AnalyzeProduct(ctx context.Context, userID, barcode string) (*dto.BarcodeAnalysisResponse, error)
}
