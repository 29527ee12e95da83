package main

import (
	"database/sql"
	"flag"
	"log"

	"txnledger/internal/config"
	"txnledger/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var status bool
	flag.BoolVar(&status, "status", false, "print the current migration version and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		log.Fatalf("Database readiness check failed: %v", err)
	}

	if status {
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		log.Printf("Migration status - Version: %d, Dirty: %v", version, dirty)
		return
	}

	if err := runner.RunMigrations(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
