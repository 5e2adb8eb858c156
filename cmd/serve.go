package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sohelranaweb/hotelier-server/internal/api"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/config"
	"github.com/sohelranaweb/hotelier-server/internal/core"
	"github.com/sohelranaweb/hotelier-server/internal/store"
	"github.com/sohelranaweb/hotelier-server/internal/stripeapi"
)

// Environment variables carrying secrets, kept out of the config file.
const (
	signingSecretEnv = "ACCESS_TOKEN_SECRET"
	stripeKeyEnv     = "STRIPE_SECRET_KEY"
)

type badgeSeeder interface {
	SeedBadge(core.Badge) error
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Hotelier server",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if cfgFile != "" {
			var err error
			if cfg, err = config.Load(cfgFile); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		} else {
			cfg = config.Default()
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		secret := os.Getenv(signingSecretEnv)
		if secret == "" {
			return fmt.Errorf("%s is not set", signingSecretEnv)
		}
		stripeKey := os.Getenv(stripeKeyEnv)
		if stripeKey == "" {
			log.Warn().Msgf("%s is not set, payment intents will fail", stripeKeyEnv)
		}

		// open the store
		var (
			st     core.Store
			seeder badgeSeeder
		)
		if cfg.Store.Path != "" {
			log.Info().Str("path", cfg.Store.Path).Msg("opening badger store")
			bs, err := store.Open(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer func() {
				if err := bs.Close(); err != nil {
					log.Error().Err(err).Msg("closing store")
				}
			}()
			st, seeder = bs, bs
		} else {
			log.Warn().Msg("no store path configured, using in-memory store")
			ms := store.NewInMemoryStore()
			st, seeder = ms, ms
		}

		for _, badge := range cfg.Badges {
			if err := seeder.SeedBadge(badge); err != nil {
				return fmt.Errorf("seeding badge %q: %w", badge.PackageName, err)
			}
		}

		var stripeOpts []stripeapi.Option
		if cfg.Stripe.BaseURL != "" {
			stripeOpts = append(stripeOpts, stripeapi.WithBaseURL(cfg.Stripe.BaseURL))
		}

		srv := api.NewServer(
			st,
			auth.NewIssuer([]byte(secret), cfg.Auth.TokenTTL),
			auth.NewVerifier([]byte(secret)),
			stripeapi.New(stripeKey, stripeOpts...),
		)

		server := &http.Server{
			Addr:    cfg.Addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
