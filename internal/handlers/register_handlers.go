package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mainmeal/mainmeal_backend/cmd/docs"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestSizeLimiter(cfg.MaxRequestBodyBytes))
	r.Use(cors.New(corsConfig(cfg)))

	registerHomeRoutes(r)

	authRequired := middleware.AuthMiddleware(services.Token)
	authOptional := middleware.OptionalAuthMiddleware(services.Token)

	// Public authentication routes plus the token-protected account routes
	registerAuthRoutes(r, services, authRequired)

	// Everything else requires a valid access token, except the plain
	// barcode lookup which works anonymously
	setupAPIRoutes(r, services, authRequired, authOptional)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	authRequired gin.HandlerFunc,
	authOptional gin.HandlerFunc,
) {
	api := r.Group("/api", authRequired)
	public := r.Group("/api", authOptional)

	registerFamilyRoutes(api, services.Family)
	registerPantryRoutes(api, services.Pantry)
	registerRecipeRoutes(api, services.Recipe)
	registerAnalysisRoutes(api, services)
	registerShoppingRoutes(api, services)
	registerMealPlanRoutes(api, services)
	registerBarcodeRoutes(api, public, services)
	registerRateLimitRoutes(api, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.ExposeHeaders = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-Request-ID"}
	corsCfg.AllowCredentials = true
	return corsCfg
}

// registerCustomValidators adds request binding validators that gin's default
// tag set does not cover.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
		switch models.MealType(fl.Field().String()) {
		case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
			return true
		}
		return false
	})
}
