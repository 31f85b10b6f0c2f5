package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/server"
	"github.com/placedex/placedex/store"
	"github.com/placedex/placedex/store/db"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "placedex",
	Short: "An HTTP service that ingests JSONPlaceholder-style records and serves cached reads",
	RunE: func(_ *cobra.Command, _ []string) error {
		p := &profile.Profile{
			Mode:               viper.GetString("mode"),
			Addr:               viper.GetString("addr"),
			Port:               viper.GetInt("port"),
			Driver:             viper.GetString("driver"),
			DSN:                viper.GetString("dsn"),
			Database:           viper.GetString("database"),
			SourceURL:          viper.GetString("source-url"),
			CacheTTLMillis:     viper.GetInt("cache-ttl-ms"),
			CacheCleanupMillis: viper.GetInt("cache-cleanup-ms"),
			CacheRedisAddr:     viper.GetString("cache-redis-addr"),
			CacheRedisPassword: viper.GetString("cache-redis-password"),
			Version:            version,
		}
		p.FromEnv()
		if err := p.Validate(); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}
		return run(p)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of the server, can be "prod", "dev" or "demo"`)
	flags.String("addr", "", "address the server binds to")
	flags.Int("port", 8080, "port the server listens on")
	flags.String("driver", "", `record store driver, "mongo" or "memory"`)
	flags.String("dsn", "", "mongo connection string")
	flags.String("database", "", "mongo database name")
	flags.String("source-url", "", "base URL of the remote ingestion API")
	flags.Int("cache-ttl-ms", 0, "duration before a populated cache entry is treated as stale (ttlMillis)")
	flags.Int("cache-cleanup-ms", 0, "interval of the expired cache entry sweep")
	flags.String("cache-redis-addr", "", "redis address enabling the shared cache backend")
	flags.String("cache-redis-password", "", "redis password for the shared cache backend")

	viper.SetEnvPrefix("placedex")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func run(p *profile.Profile) error {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := db.NewDriver(ctx, p)
	if err != nil {
		return errors.Wrap(err, "failed to create record store driver")
	}
	st, err := store.New(driver, p)
	if err != nil {
		_ = driver.Close(ctx)
		return errors.Wrap(err, "failed to create store")
	}

	s := server.NewServer(p, st)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Shutdown(context.Background())
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		s.Shutdown(context.Background())
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
