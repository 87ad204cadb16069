// Command reconcile approves pending recharges that appear on a mobile money
// statement. Each CSV row is momoNumber,amount,reference.
package main

import (
	"context"
	"log"
	"os"

	"github.com/ArowuTest/conomy-backend/internal/config"
	mongorepo "github.com/ArowuTest/conomy-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/ArowuTest/conomy-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		log.Fatal("MongoDB URI is required")
	}

	if len(os.Args) < 2 {
		log.Fatal("Statement CSV file path is required as a command line argument")
	}
	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open statement: %v", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Reconcile.Timeout)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	settlement := services.NewSettlementService(
		mongorepo.NewTransactor(db),
		mongorepo.NewUserRepository(db),
		mongorepo.NewRechargeRepository(db),
		mongorepo.NewWithdrawalRepository(db),
	)

	summary, err := reconcile(ctx, settlement, file)
	if err != nil {
		log.Fatalf("Failed to reconcile statement: %v", err)
	}
	log.Printf("Reconciliation finished: %d approved, %d unmatched, %d duplicates, %d skipped",
		summary.Approved, summary.Unmatched, summary.Duplicates, summary.Skipped)
}
