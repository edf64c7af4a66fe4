package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		TokenRepo:    newPgxTokenRepository(dbPool),
		UsageRepo:    newPgxUsageRepository(dbPool),
		FamilyRepo:   newPgxFamilyRepository(dbPool),
		PantryRepo:   newPgxPantryRepository(dbPool),
		RecipeRepo:   newPgxRecipeRepository(dbPool),
		ShoppingRepo: newPgxShoppingRepository(dbPool),
		MealPlanRepo: newPgxMealPlanRepository(dbPool),
		BarcodeRepo:  newPgxBarcodeRepository(dbPool),
	}
}
