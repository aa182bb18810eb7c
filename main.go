package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-api/config"
	"shop-api/controllers"
	"shop-api/database"
	"shop-api/logger"
	"shop-api/models"
	"shop-api/repository"
	"shop-api/routes"
	"shop-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Could not connect to PostgreSQL", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	store := repository.NewStore(db)
	tokenService := services.NewTokenService(cfg)
	authService := services.NewAuthService(store, tokenService)
	cartService := services.NewCartService(store)
	productService := services.NewProductService(store)
	itemService := services.NewItemService(store)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.Setup(r, routes.Deps{
		Auth:     controllers.NewAuthController(authService),
		Cart:     controllers.NewCartController(cartService),
		Products: controllers.NewProductController(productService),
		Items:    controllers.NewItemController(itemService),
		Tokens:   tokenService,
	})

	logger.Log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
