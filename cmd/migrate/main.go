package main

import (
	"fmt"
	"os"
	"strconv"

	"roster-api/config"
	"roster-api/migrations"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.ConfigureLogging(cfg)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	migrator, err := migrations.NewMigrator(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Migrator unavailable")
	}
	migrations.Register(migrator)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
	case "status":
		if err := showStatus(migrator); err != nil {
			log.Fatal().Err(err).Msg("Status failed")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) error {
	records, err := migrator.Status()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No migrations have been run yet.")
		return nil
	}

	fmt.Println("Migration Status:")
	fmt.Println("Batch | Name")
	fmt.Println("------|-----")

	for _, record := range records {
		fmt.Printf("%-5d | %s\n", record.Batch, record.Name)
	}
	return nil
}
