package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/expensehub/backend/config"
	"github.com/expensehub/backend/database"
	"github.com/expensehub/backend/models"
	"github.com/expensehub/backend/store"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	users := store.NewUserStore(db)
	expenses := store.NewExpenseStore(db)

	fmt.Println("🌱 Starting seed...")

	if err := seedAdmin(users, cfg); err != nil {
		log.Fatalf("❌ Failed to seed admin user: %v", err)
	}
	if err := seedDemoExpenses(users, expenses); err != nil {
		log.Fatalf("❌ Failed to seed demo expenses: %v", err)
	}

	fmt.Println("✅ Seed complete")
}

// seedAdmin ensures the default admin account exists.
func seedAdmin(users *store.UserStore, cfg config.Config) error {
	_, err := users.ByEmail(cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := users.Create(cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin); err != nil {
		return err
	}
	log.Printf("✅ Admin user seeded: %s", cfg.AdminEmail)
	return nil
}

// seedDemoExpenses creates a demo user with a couple of expenses when
// the expenses table is empty.
func seedDemoExpenses(users *store.UserStore, expenses *store.ExpenseStore) error {
	count, err := expenses.Count(store.ExpenseQuery{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	const demoEmail = "seed@demo.com"

	user, err := users.ByEmail(demoEmail)
	if errors.Is(err, store.ErrNotFound) {
		user, err = users.Create(demoEmail, "123456", models.RoleUser)
	}
	if err != nil {
		return err
	}

	now := time.Now()
	demo := []models.Expense{
		{Description: "Groceries", Amount: 350, Category: "Food", Date: now, UserID: user.ID},
		{Description: "Gasoline", Amount: 500, Category: "Transport", Date: now, UserID: user.ID},
	}
	for i := range demo {
		if err := expenses.Create(&demo[i]); err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d demo expenses for %s", len(demo), demoEmail)
	return nil
}
