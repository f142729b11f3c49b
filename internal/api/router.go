package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/platefull/recipe-api/docs"
	"github.com/platefull/recipe-api/internal/api/handler"
	"github.com/platefull/recipe-api/internal/api/middleware"
	"github.com/platefull/recipe-api/internal/core/service"
	"github.com/platefull/recipe-api/internal/infrastructure/assets"
	mongodb "github.com/platefull/recipe-api/internal/infrastructure/db/mongo"
	"github.com/platefull/recipe-api/internal/infrastructure/db/redis"
	"github.com/platefull/recipe-api/internal/infrastructure/http/handlers"
)

// Config carries the settings the router needs beyond its stores.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	MediaDir  string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config, client *mongo.Client, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("platefull"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	followRepo := mongodb.NewFollowRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	ingredientRepo := mongodb.NewIngredientRepository(db)
	recipeRepo := mongodb.NewRecipeRepository(client, db)
	favoriteRepo := mongodb.NewFavoriteRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	tokenStore := redis.NewTokenStore(rdb)

	assetStore, err := assets.NewStore(cfg.MediaDir)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, followRepo, recipeRepo, log)
	tagService := service.NewTagService(tagRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, log)
	recipeService := service.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		userRepo,
		followRepo,
		favoriteRepo,
		cartRepo,
		assetStore,
		log,
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService)

	requireAuth := middleware.Auth(cfg.JWTSecret, tokenStore)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, tokenStore)

	// --- Auth routes ---
	e.POST("/api/auth/token/login", authHandler.Login)
	e.POST("/api/auth/token/logout", authHandler.Logout, requireAuth)

	// --- User routes ---
	// Static segments must be registered alongside /:id; Echo resolves them
	// ahead of the param route.
	e.POST("/api/users", authHandler.Register)
	e.GET("/api/users", userHandler.List, optionalAuth)
	e.GET("/api/users/me", userHandler.Me, requireAuth)
	e.POST("/api/users/set_password", userHandler.SetPassword, requireAuth)
	e.GET("/api/users/subscriptions", userHandler.Subscriptions, requireAuth)
	e.GET("/api/users/:id", userHandler.Get, optionalAuth)
	e.POST("/api/users/:id/subscribe", userHandler.Subscribe, requireAuth)
	e.DELETE("/api/users/:id/subscribe", userHandler.Unsubscribe, requireAuth)

	// --- Tag routes ---
	e.GET("/api/tags", tagHandler.List)
	e.GET("/api/tags/:id", tagHandler.Get)
	e.POST("/api/tags", tagHandler.Create, requireAuth)
	e.PUT("/api/tags/:id", tagHandler.Update, requireAuth)
	e.DELETE("/api/tags/:id", tagHandler.Delete, requireAuth)

	// --- Ingredient routes ---
	e.GET("/api/ingredients", ingredientHandler.List)
	e.GET("/api/ingredients/:id", ingredientHandler.Get)
	e.POST("/api/ingredients", ingredientHandler.Create, requireAuth)
	e.PUT("/api/ingredients/:id", ingredientHandler.Update, requireAuth)
	e.DELETE("/api/ingredients/:id", ingredientHandler.Delete, requireAuth)

	// --- Recipe routes ---
	e.GET("/api/recipes", recipeHandler.List, optionalAuth)
	e.GET("/api/recipes/download_shopping_cart", recipeHandler.DownloadShoppingCart, requireAuth)
	e.GET("/api/recipes/:id", recipeHandler.Get, optionalAuth)
	e.POST("/api/recipes", recipeHandler.Create, requireAuth)
	e.PUT("/api/recipes/:id", recipeHandler.Update, requireAuth)
	e.DELETE("/api/recipes/:id", recipeHandler.Delete, requireAuth)
	e.POST("/api/recipes/:id/favorite", recipeHandler.Favorite, requireAuth)
	e.DELETE("/api/recipes/:id/favorite", recipeHandler.Unfavorite, requireAuth)
	e.POST("/api/recipes/:id/shopping_cart", recipeHandler.AddToCart, requireAuth)
	e.DELETE("/api/recipes/:id/shopping_cart", recipeHandler.RemoveFromCart, requireAuth)

	// --- Uploaded media ---
	e.Static("/media", cfg.MediaDir)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
