// Command seed fills the database with demo users and their identity
// records. Running it again only adds what is missing.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/aussiebroadwan/persons/internal/persons/app"
	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := app.LoadConfigFile(*envFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slogx.New(slogx.Config{
		Service: "persons-seed",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		logger.Error("failed to load pepper", "error", err)
		os.Exit(1)
	}

	ctx := slogx.WithContext(context.Background(), logger)

	db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seeder := &service.SeedService{Store: db}
	report, err := seeder.Seed(ctx)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed complete",
		"users_created", report.UsersCreated,
		"persons_created", report.PersonsCreated,
		"password", service.SeedPassword,
	)
}
