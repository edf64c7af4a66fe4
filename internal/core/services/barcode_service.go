package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

const (
	openFoodFactsBaseURL = "https://world.openfoodfacts.org/api/v2/product"
	barcodeCacheTTL      = 7 * 24 * time.Hour
)

// barcodeService implements BarcodeSvcFacade against the Open Food Facts
// product API. Lookups are cached in Postgres so repeat scans of the same
// product skip the upstream call for a week.
type barcodeService struct {
	barcodeRepo portsrepo.BarcodeCacheRepositoryFacade
	familyRepo  portsrepo.FamilyRepositoryFacade
	aiService   portssvc.AISvcFacade
	baseURL     string
	httpClient  *http.Client
}

// NewBarcodeService creates a new instance of barcodeService.
func NewBarcodeService(barcodeRepo portsrepo.BarcodeCacheRepositoryFacade, familyRepo portsrepo.FamilyRepositoryFacade, aiService portssvc.AISvcFacade) portssvc.BarcodeSvcFacade {
	return &barcodeService{
		barcodeRepo: barcodeRepo,
		familyRepo:  familyRepo,
		aiService:   aiService,
		baseURL:     openFoodFactsBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.BarcodeSvcFacade = (*barcodeService)(nil)

// offProduct mirrors the fields we read from the Open Food Facts payload.
type offProduct struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string                 `json:"product_name"`
		ProductNameEn   string                 `json:"product_name_en"`
		Brands          string                 `json:"brands"`
		IngredientsText string                 `json:"ingredients_text"`
		IngredientsEn   string                 `json:"ingredients_text_en"`
		AllergensTags   []string               `json:"allergens_tags"`
		Nutriments      map[string]json.Number `json:"nutriments"`
		NutriscoreGrade string                 `json:"nutriscore_grade"`
		ImageFrontURL   string                 `json:"image_front_url"`
		ImageURL        string                 `json:"image_url"`
	} `json:"product"`
}

func (s *barcodeService) LookupProduct(ctx context.Context, barcode string) (*dto.BarcodeProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := s.barcodeRepo.FindCachedProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if cached != nil && time.Since(cached.CachedAt) < barcodeCacheTTL {
		var product dto.BarcodeProduct
		if err := json.Unmarshal(cached.ProductData, &product); err == nil {
			logger.Debug("Barcode served from cache", slog.String("barcode", barcode))
			return &product, nil
		}
		// Unreadable cache entry falls through to a fresh lookup.
	}

	product, err := s.fetchProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(product)
	if err == nil {
		cacheErr := s.barcodeRepo.SaveCachedProduct(ctx, models.BarcodeCache{
			Barcode:     barcode,
			ProductData: encoded,
			CachedAt:    time.Now().UTC(),
		})
		if cacheErr != nil {
			logger.Warn("Failed to cache barcode lookup", slog.String("barcode", barcode), slog.String("error", cacheErr.Error()))
		}
	}
	return product, nil
}

func (s *barcodeService) fetchProduct(ctx context.Context, barcode string) (*dto.BarcodeProduct, error) {
	url := fmt.Sprintf("%s/%s.json", s.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product lookup request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product lookup returned %d", resp.StatusCode)
	}

	var payload offProduct
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode product payload: %w", err)
	}
	if payload.Status != 1 {
		return nil, apperrors.ErrNotFound
	}

	p := payload.Product
	name := p.ProductName
	if name == "" {
		name = p.ProductNameEn
	}
	if name == "" {
		name = "Unknown Product"
	}
	ingredients := p.IngredientsText
	if ingredients == "" {
		ingredients = p.IngredientsEn
	}
	imageURL := p.ImageFrontURL
	if imageURL == "" {
		imageURL = p.ImageURL
	}

	// Allergen tags arrive namespaced ("en:milk"); strip the prefix.
	allergens := make([]string, 0, len(p.AllergensTags))
	for _, tag := range p.AllergensTags {
		if idx := strings.Index(tag, ":"); idx >= 0 {
			tag = tag[idx+1:]
		}
		if tag != "" {
			allergens = append(allergens, tag)
		}
	}

	return &dto.BarcodeProduct{
		Barcode:         barcode,
		ProductName:     name,
		Brands:          p.Brands,
		IngredientsText: ingredients,
		Allergens:       allergens,
		Nutrition:       nutritionFrom(p.Nutriments),
		ImageURL:        imageURL,
		NutriScore:      p.NutriscoreGrade,
	}, nil
}

// nutritionFrom picks the per-100g values out of the nutriments map. decimal
// keeps the upstream precision instead of rounding through float64.
func nutritionFrom(nutriments map[string]json.Number) *dto.Nutrition {
	if len(nutriments) == 0 {
		return nil
	}
	get := func(key string) *decimal.Decimal {
		raw, ok := nutriments[key]
		if !ok {
			return nil
		}
		d, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil
		}
		return &d
	}
	return &dto.Nutrition{
		EnergyKcal:    get("energy-kcal_100g"),
		Proteins:      get("proteins_100g"),
		Carbohydrates: get("carbohydrates_100g"),
		Sugars:        get("sugars_100g"),
		Fat:           get("fat_100g"),
		SaturatedFat:  get("saturated-fat_100g"),
		Salt:          get("salt_100g"),
		Fiber:         get("fiber_100g"),
	}
}

// AnalyzeProduct looks the product up and runs its ingredient list through
// the family safety analysis.
func (s *barcodeService) AnalyzeProduct(ctx context.Context, userID, barcode string) (*dto.BarcodeAnalysisResponse, error) {
	product, err := s.LookupProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	family, err := s.familyRepo.FindFamilyMembers(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ingredients []string
	if product.IngredientsText != "" {
		for _, ing := range strings.Split(product.IngredientsText, ",") {
			if trimmed := strings.TrimSpace(ing); trimmed != "" {
				ingredients = append(ingredients, trimmed)
			}
		}
	}
	if len(ingredients) == 0 {
		ingredients = product.Allergens
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("product %s has no ingredient data: %w", barcode, apperrors.ErrNotFound)
	}

	analysis, err := s.aiService.AnalyzeIngredients(ctx, ingredients, family)
	if err != nil {
		return nil, err
	}
	analysis.ProductName = &product.ProductName
	analysis.ExtractedIngredients = ingredients

	return &dto.BarcodeAnalysisResponse{
		Product:  *product,
		Analysis: *analysis,
	}, nil
}
