package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/poskit-v1/terminal/internal/cart"
	"github.com/poskit-v1/terminal/internal/core"
	"github.com/poskit-v1/terminal/internal/inventory"
	"github.com/poskit-v1/terminal/internal/receipt"
	"github.com/poskit-v1/terminal/internal/terminal"
	logx "github.com/poskit-v1/terminal/pkg/logger"
	pkgredis "github.com/poskit-v1/terminal/pkg/redis"
)

// AppConfig defines all configurable parameters for the terminal, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"POS_ENVIRONMENT" default:"development"`

	// Starter catalog
	SeedDefaults bool `envconfig:"POS_SEED_DEFAULTS" default:"true"`

	// Display
	Currency string `envconfig:"POS_CURRENCY" default:"Rs"`

	// Optional back-office receipt feed
	Redis      pkgredis.Config
	ReceiptKey string `envconfig:"RECEIPT_KEY" default:"pos:receipts"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	store := inventory.New()
	if cfg.SeedDefaults {
		if err := store.SeedDefaults(); err != nil {
			logx.Fatal().Err(err).Msg("failed to seed inventory")
		}
	}

	var publisher receipt.Publisher = receipt.NopPublisher{}
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer rdb.Close()
		publisher = receipt.NewRedisPublisher(rdb, cfg.ReceiptKey, cfg.Currency)
		logx.Info().Str("key", cfg.ReceiptKey).Msg("receipt feed enabled")
	}

	term := terminal.New(store, cart.New(), os.Stdin, os.Stdout, terminal.Options{
		Currency:  cfg.Currency,
		Publisher: publisher,
	})
	term.Run(ctx)
}
