package dto

import "github.com/shopspring/decimal"

// Nutrition holds per-100g values from Open Food Facts. Fields the product
// record lacks stay nil rather than reporting zero.
type Nutrition struct {
	EnergyKcal    *decimal.Decimal `json:"energy_kcal,omitempty"`
	Proteins      *decimal.Decimal `json:"proteins,omitempty"`
	Carbohydrates *decimal.Decimal `json:"carbohydrates,omitempty"`
	Sugars        *decimal.Decimal `json:"sugars,omitempty"`
	Fat           *decimal.Decimal `json:"fat,omitempty"`
	SaturatedFat  *decimal.Decimal `json:"saturated_fat,omitempty"`
	Salt          *decimal.Decimal `json:"salt,omitempty"`
	Fiber         *decimal.Decimal `json:"fiber,omitempty"`
}

// BarcodeProduct is a product looked up by barcode.
type BarcodeProduct struct {
	Barcode         string     `json:"barcode"`
	ProductName     string     `json:"product_name"`
	Brands          string     `json:"brands,omitempty"`
	IngredientsText string     `json:"ingredients_text,omitempty"`
	Allergens       []string   `json:"allergens"`
	Nutrition       *Nutrition `json:"nutrition,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	NutriScore      string     `json:"nutriscore,omitempty"`
}

// BarcodeAnalysisResponse pairs the product with the family safety verdict.
type BarcodeAnalysisResponse struct {
	Product  BarcodeProduct     `json:"product"`
	Analysis IngredientAnalysis `json:"analysis"`
}
