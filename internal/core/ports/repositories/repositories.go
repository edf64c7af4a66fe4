package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	TokenRepo    TokenRepositoryFacade
	UsageRepo    UsageRepositoryFacade
	FamilyRepo   FamilyRepositoryFacade
	PantryRepo   PantryRepositoryFacade
	RecipeRepo   RecipeRepositoryFacade
	ShoppingRepo ShoppingRepositoryFacade
	MealPlanRepo MealPlanRepositoryFacade
	BarcodeRepo  BarcodeCacheRepositoryFacade
}
