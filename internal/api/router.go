package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mokemoke0821/aoba-meal-app-sub000/config"
	adminBackup "github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/admin/backup"
	adminReport "github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/admin/report"
	adminSettings "github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/admin/settings"
	adminUser "github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/admin/user"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/auth"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/menu"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/record"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/statistics"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/database"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/middleware"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/state"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
	"github.com/mokemoke0821/aoba-meal-app-sub000/pkg/logger"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Redis is optional when the sqlite store is used; without it,
	// logout revocation degrades to token expiry.
	if cfg.RedisAddr != "" || cfg.StoreBackend == "redis" {
		if err := database.ConnectRedis(cfg); err != nil {
			return nil, err
		}
	}

	switch cfg.StoreBackend {
	case "redis":
		services.AppStore = store.NewRedisStore(database.RedisClient)
	case "sqlite":
		gs, err := store.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		services.AppStore = gs
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	services.AppState, err = state.NewContainer(services.AppStore, logger.Log)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			record.RegisterRoutes(authorized)
			menu.RegisterRoutes(authorized)
			statistics.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminReport.RegisterRoutes(admin)
			adminBackup.RegisterRoutes(admin)
			adminSettings.RegisterRoutes(admin)
		}
	}

	return router, nil
}
