// Command migrate applies, rolls back or reports the database schema
// migrations. Usage: migrate [up|down|status]; up is the default.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"careercard/internal/config"
	"careercard/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.OpenSQL(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx := context.Background()

	switch command {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
		log.Println("Migrations applied")
	case "down":
		if err := database.RollbackMigration(ctx, db); err != nil {
			return err
		}
		log.Println("Rolled back one migration")
	case "status":
		if err := database.MigrationStatus(ctx, db); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q (expected up, down or status)", command)
	}

	return nil
}
