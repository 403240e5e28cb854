package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/mokemoke0821/aoba-meal-app-sub000/config"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/database"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	if err := database.DB.AutoMigrate(&models.Account{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	initAdminAccount()

	defer func() {
		if err := services.AppState.Close(); err != nil {
			log.Printf("failed to flush state on shutdown: %v", err)
		}
	}()

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func initAdminAccount() {
	adminUsername := "admin"
	adminPassword := "aoba1234"

	var admin models.Account
	result := database.DB.Where("username = ?", adminUsername).First(&admin)

	if result.Error != nil {
		if result.Error.Error() == "record not found" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}

			admin = models.Account{
				Username: adminUsername,
				Password: string(hashedPassword),
				Role:     "admin",
			}

			if err := database.DB.Create(&admin).Error; err != nil {
				log.Fatalf("failed to create admin account: %v", err)
			}
			log.Println("Admin account created successfully!")
		} else {
			log.Fatalf("failed to check for admin account: %v", result.Error)
		}
	} else {
		log.Println("Admin account already exists.")
	}
}
