package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"steelorders/cmd"
	postgres_adapter "steelorders/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	path := flag.String("file", "seed/users.yaml", "seed file")
	flag.Parse()

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("component", "seed")

	file, err := cmd.LoadSeedFile(*path)
	if err != nil {
		log.Fatalf("Error loading seed file: %v", err)
	}

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres_adapter.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(config, db)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	result, err := app.Seed(context.Background(), file, logger)
	if err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	logger.Info("seeding finished",
		"users_created", result.UsersCreated,
		"users_existing", result.UsersExisting,
		"orders_created", result.OrdersCreated,
	)
}
