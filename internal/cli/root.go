// Package cli implements the storefront command-line surface. Commands are
// thin: they parse flags, call the managers and services, and print results;
// every behavior worth testing lives in the pkg packages.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nourshop/storefront/pkg/api"
	"github.com/nourshop/storefront/pkg/cart"
	"github.com/nourshop/storefront/pkg/catalog"
	"github.com/nourshop/storefront/pkg/checkout"
	"github.com/nourshop/storefront/pkg/kv"
	"github.com/nourshop/storefront/pkg/logger"
	"github.com/nourshop/storefront/pkg/session"
)

// app holds the wired storefront components for the lifetime of one command.
type app struct {
	settings Settings
	store    kv.Store
	sessions *session.Manager
	carts    *cart.Manager
	client   *api.Client
	catalog  *catalog.Service
	checkout *checkout.Service
	logger   *slog.Logger
}

var (
	flagConfig string
	current    *app
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Shop from the terminal: browse the catalog, manage your cart, place orders",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(flagConfig)
		if err != nil {
			return err
		}
		settings, err := loadSettings(path)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd.Context(), settings)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			_ = current.sessions.Close()
		}
	},
}

// buildApp wires storage, session, cart and the backend client. Ordering
// matters: the session restore settles before the cart resolves its
// partition.
func buildApp(ctx context.Context, settings Settings) (*app, error) {
	logOpts := []logger.Option{logger.WithFormat(logger.Format(settings.LogFormat))}
	if settings.Verbose {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
	}
	log := logger.New(logOpts...)

	var store kv.Store
	if settings.RedisURL != "" {
		redisStore, err := kv.ConnectRedis(ctx, kv.RedisConfig{
			ConnectionURL:  settings.RedisURL,
			RetryAttempts:  1,
			RetryInterval:  time.Second,
			ConnectTimeout: 5 * time.Second,
			KeyPrefix:      "storefront:",
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis store: %w", err)
		}
		store = redisStore
	} else {
		fileStore, err := kv.NewFileStore(settings.StatePath)
		if err != nil {
			return nil, fmt.Errorf("open state file: %w", err)
		}
		store = fileStore
	}

	sessions := session.New(store, session.WithLogger(log))
	if err := sessions.Initialize(ctx); err != nil {
		// Storage faults leave the session anonymous; the CLI still works.
		log.Warn("session restore failed, continuing anonymous", "error", err)
	}

	carts := cart.New(store, sessions, cart.WithLogger(log))
	if err := carts.Initialize(ctx); err != nil {
		log.Warn("cart load failed, starting empty", "error", err)
	}

	client, err := api.New(settings.APIURL,
		api.WithTokenSource(sessions),
		api.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		settings: settings,
		store:    store,
		sessions: sessions,
		carts:    carts,
		client:   client,
		catalog:  catalog.New(client),
		checkout: checkout.New(client, carts, sessions, checkout.WithLogger(log)),
		logger:   log,
	}, nil
}

// Execute runs the CLI with the given base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		registerCmd,
		whoamiCmd,
		newCartCmd(),
		newCatalogCmd(),
		newOrderCmd(),
		newUsersCmd(),
		newConfigCmd(),
	)
}
