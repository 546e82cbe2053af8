package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efritz/backoff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"redisgate/config"
	"redisgate/logger"
	"redisgate/redis"
	"redisgate/server"
)

const version = "1.0.0"

const maxConnectAttempts = 10

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "redisgate",
		Short: "A REST and WebSocket gateway in front of Redis",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	if err := config.Init(configFile); err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	cfg := config.Get()

	if err := logger.Init(cfg.LogConfig); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer zap.L().Sync()

	store := redis.NewStore(newClient(cfg.Redis))

	if err := waitForRedis(store); err != nil {
		store.Close()
		return err
	}

	srv, err := server.NewServer(store, cfg)
	if err != nil {
		store.Close()
		return errors.Wrap(err, "failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "server failed")
		}

		return nil

	case <-ctx.Done():
	}

	zap.S().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newClient(cfg *config.RedisConfig) redis.Client {
	configs := []redis.ConfigFunc{
		redis.WithPassword(cfg.Password),
		redis.WithDatabase(cfg.Database),
		redis.WithPoolCapacity(cfg.PoolCapacity),
		redis.WithConnectTimeout(cfg.ConnectTimeout()),
		redis.WithReadTimeout(cfg.ReadTimeout()),
		redis.WithWriteTimeout(cfg.WriteTimeout()),
		redis.WithLogger(redis.NewZapLogger(zap.L())),
	}

	if timeout := cfg.BorrowTimeout(); timeout != nil {
		configs = append(configs, redis.WithBorrowTimeout(*timeout))
	}

	if len(cfg.ReadReplicaAddrs) > 0 {
		configs = append(configs, redis.WithReadReplicaAddrs(cfg.ReadReplicaAddrs...))
	}

	return redis.NewClient(cfg.Addr, configs...)
}

// waitForRedis pings the upstream until it answers so the gateway does
// not bind its listener in front of a dead backend.
func waitForRedis(store *redis.Store) error {
	b := backoff.NewExponentialBackoff(time.Millisecond*250, time.Second*5)

	var lastErr error
	for attempt := 0; attempt < maxConnectAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(b.NextInterval())
		}

		if _, lastErr = store.Admin.Ping(); lastErr == nil {
			zap.S().Infow("connected to redis")
			return nil
		}

		zap.S().Warnw("redis not reachable yet", "attempt", attempt+1, "error", lastErr)
	}

	return errors.Wrapf(lastErr, "redis unreachable after %d attempts", maxConnectAttempts)
}
