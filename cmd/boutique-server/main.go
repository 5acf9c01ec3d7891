package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/category"
	"boutique-backend/internal/config"
	"boutique-backend/internal/customer"
	"boutique-backend/internal/db"
	"boutique-backend/internal/order"
	"boutique-backend/internal/product"
	"boutique-backend/internal/user"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()

	if err := db.Migrate(cfg.MigrationsDir, cfg.PostgresDSN); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	pool, err := db.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	svcs := services{
		users:      user.NewService(user.NewPGRepo(pool), logger),
		customers:  customer.NewService(customer.NewPGRepo(pool), logger),
		carts:      cart.NewService(cart.NewPGRepo(pool), logger),
		orders:     order.NewService(order.NewPGRepo(pool), logger),
		products:   product.NewService(product.NewPGRepo(pool), logger),
		categories: category.NewService(category.NewPGRepo(pool), logger),
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: newRouter(svcs, logger),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		close(done)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("boutique-server listening")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	<-done
}
