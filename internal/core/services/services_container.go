package services

import (
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.TokenRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, repos.UserRepo)
	container.RateLimiter = NewRateLimitService(cfg, repos.UsageRepo)
	container.Family = NewFamilyService(repos.FamilyRepo)
	container.Pantry = NewPantryService(repos.PantryRepo)
	container.Recipe = NewRecipeService(repos.RecipeRepo)

	// AI first; shopping generation and barcode analysis call through it.
	container.AI = NewAIService(cfg)
	container.Shopping = NewShoppingService(repos.ShoppingRepo, repos.RecipeRepo, container.AI)
	container.MealPlan = NewMealPlanService(repos.MealPlanRepo, repos.RecipeRepo, container.Shopping)
	container.Barcode = NewBarcodeService(repos.BarcodeRepo, repos.FamilyRepo, container.AI)

	return container
}
