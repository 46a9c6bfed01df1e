package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/config"
	"github.com/denialp88/tickets/internal/db"
	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/repository"
	"github.com/denialp88/tickets/internal/seed"
	"github.com/denialp88/tickets/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	if err := seed.EnsureDefaultUsers(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed default users: %v", err)
	}
	log.Println("Default users ensured: admin/admin123 and booker/booker123")

	if os.Getenv("SEED_DEMO") == "true" {
		if err := seedDemoData(ctx, gormDB); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Demo events and transactions created")
	}

	log.Println("Seed completed successfully!")
}

// seedDemoData creates a small data set to explore the reports with. It goes
// through the services so derived amounts are computed the same way the API
// computes them.
func seedDemoData(ctx context.Context, gormDB *gorm.DB) error {
	eventRepo := repository.NewEventRepository(gormDB)
	txnRepo := repository.NewTransactionRepository(gormDB)

	eventService := service.NewEventService(eventRepo, txnRepo)
	txnService := service.NewTransactionService(txnRepo, eventRepo, nil)

	event, err := eventService.Create(ctx, service.EventInput{
		Name:                "Demo Concert",
		Date:                time.Now().AddDate(0, 0, 14),
		Location:            "City Arena",
		CommissionPerTicket: decimal.NewFromInt(10),
	})
	if err != nil {
		return err
	}

	demoTxns := []service.TransactionInput{
		{
			EventID:        event.ID,
			Type:           model.TransactionTypePurchase,
			NumTickets:     5,
			PricePerTicket: decimal.NewFromInt(100),
			PartyName:      "Demo Seller",
			Date:           time.Now().AddDate(0, 0, -2),
		},
		{
			EventID:        event.ID,
			Type:           model.TransactionTypeSale,
			NumTickets:     3,
			PricePerTicket: decimal.NewFromInt(150),
			PartyName:      "Demo Buyer",
			Date:           time.Now().AddDate(0, 0, -1),
		},
	}
	for _, in := range demoTxns {
		if _, err := txnService.Create(ctx, model.RoleAdmin, in); err != nil {
			return err
		}
	}
	return nil
}
