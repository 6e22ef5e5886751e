package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)
	log.Info("Database connected and migrated")

	// Initialize Redis
	cacheClient, err := cache.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer cacheClient.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	postRepo := repository.NewPostRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	statsTTL := time.Duration(cfg.StatsTTL) * time.Second
	catalogService := services.NewCatalogService(productRepo, categoryRepo, promotionRepo, cacheClient, cacheTTL)
	orderService := services.NewOrderService(orderRepo, cacheClient)
	postService := services.NewPostService(postRepo)
	contactService := services.NewContactService(contactRepo)
	dashboardService := services.NewDashboardService(orderRepo, productRepo, postRepo, contactRepo, cacheClient, statsTTL)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, postService, contactService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	adminHandler := handlers.NewAdminHandler(catalogService, postService, contactService, dashboardService, log)

	// Setup routes
	if cfg.Mode == "prod" || cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:slug", catalogHandler.GetProduct)
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/categories/:slug/products", catalogHandler.ListCategoryProducts)
		api.GET("/promotions", catalogHandler.ListPromotions)
		api.GET("/posts", catalogHandler.ListPosts)
		api.GET("/posts/:slug", catalogHandler.GetPost)
		api.POST("/contact", catalogHandler.CreateContact)

		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:id", orderHandler.GetOrder)

		admin := api.Group("/admin")
		{
			admin.GET("/orders", orderHandler.ListOrders)
			admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)

			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/promotions", adminHandler.ListPromotions)
			admin.POST("/promotions", adminHandler.CreatePromotion)
			admin.PUT("/promotions/:id", adminHandler.UpdatePromotion)
			admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)

			admin.GET("/posts", adminHandler.ListPosts)
			admin.POST("/posts", adminHandler.CreatePost)
			admin.PUT("/posts/:id", adminHandler.UpdatePost)
			admin.DELETE("/posts/:id", adminHandler.DeletePost)

			admin.GET("/contacts", adminHandler.ListContacts)
			admin.PUT("/contacts/:id/read", adminHandler.MarkContactRead)

			admin.GET("/stats", adminHandler.GetStats)
		}
	}

	// Start server with graceful shutdown so the DB and Redis handles
	// get closed on the way out.
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
}
