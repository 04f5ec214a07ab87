package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Triaksa-Space/cookie-notice/config"
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var version = "dev"

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "cookie-notice",
	Short:         "Cookie consent notice service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.InitConfig()
		if err != nil {
			return err
		}
		logger.Init(logger.Config{
			Level:       logger.ParseLevel(cfg.LogLevel),
			Environment: cfg.Environment,
			Version:     version,
		})
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serverCmd, migrateCmd, tokenCmd, backupCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// backend is the option storage the commands share.
type backend struct {
	db    *sqlx.DB
	redis *redis.Client
	store options.Store
}

func (b *backend) Close() {
	if b.redis != nil {
		b.redis.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}

// openBackend connects to MySQL when DATABASE_URL is set and falls back to an
// in-memory store otherwise. Redis, when reachable, caches reads.
func openBackend(ctx context.Context) (*backend, error) {
	log := logger.Get().WithComponent("main")
	b := &backend{}

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not configured, settings are kept in memory only")
		b.store = options.NewMemoryStore()
	} else {
		db, err := config.InitDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.db = db
		b.store = options.NewMySQLStore(db)
	}

	if client := config.InitRedis(ctx, cfg); client != nil {
		b.redis = client
		b.store = options.NewCachedStore(b.store, client, cfg.OptionsCacheTTL)
	}
	return b, nil
}

func newRepository(b *backend) *options.Repository {
	return options.NewRepository(b.store, notice.NewValidator())
}
