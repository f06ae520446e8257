package main

import (
	"context"
	"fmt"
	"os"

	"roster-api/config"
	"roster-api/fixtures"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.ConfigureLogging(cfg)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	ctx := context.Background()
	f := fixtures.NewFixtures(db, clockwork.NewRealClock())

	switch command := os.Args[1]; command {
	case "generate":
		if _, err := f.GenerateTestData(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
	case "clear":
		if err := f.ClearAllData(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear data")
		}
	case "regenerate":
		if err := f.ClearAllData(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear data")
		}
		if _, err := f.GenerateTestData(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate   - Seed players, assignments and statistics")
	fmt.Println("  go run ./cmd/fixtures clear      - Delete every player and its records")
	fmt.Println("  go run ./cmd/fixtures regenerate - Clear then generate")
}
