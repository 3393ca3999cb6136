package main

import (
	"log"

	"github.com/expensehub/backend/config"
	"github.com/expensehub/backend/database"
	"github.com/expensehub/backend/handlers"
	"github.com/expensehub/backend/services"
	"github.com/expensehub/backend/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close(db)

	// Wire stores, services and handlers explicitly; no globals.
	userStore := store.NewUserStore(db)
	expenseStore := store.NewExpenseStore(db)

	expenseService := services.NewExpenseService(expenseStore)
	reportService := services.NewReportService(expenseStore)

	authHandler := handlers.NewAuthHandler(userStore, cfg)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := handlers.NewRouter(cfg, authHandler, expenseHandler, reportHandler)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
