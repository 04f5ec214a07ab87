package main

import (
	"context"
	"flag"
	"os"

	"github.com/Triaksa-Space/cookie-notice/config"
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
)

// Seeds the default notice settings. An existing record is left alone unless
// -force is given.
func main() {
	force := flag.Bool("force", false, "overwrite saved settings with the defaults")
	flag.Parse()

	log := logger.Get().WithComponent("seeder")
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatal("Failed to load config", err)
	}
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL must be set", nil)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDB()

	repo := options.NewRepository(options.NewMySQLStore(db), notice.NewValidator())
	existing, err := repo.Load(ctx)
	if err != nil {
		log.Fatal("Failed to read notice settings", err)
	}
	if existing != nil && !*force {
		log.Info("Notice settings already saved, skipping", logger.OptionName(options.OptionName))
		return
	}

	if err := repo.Save(ctx, notice.Default().Input(), 0); err != nil {
		log.Fatal("Failed to seed notice settings", err)
	}
	log.Info("Seeded default notice settings", logger.OptionName(options.OptionName))
}
