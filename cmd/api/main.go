package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flowershop-api/internal/client"
	"flowershop-api/internal/config"
	"flowershop-api/internal/logging"
	"flowershop-api/internal/repository"
	"flowershop-api/internal/server"
	"flowershop-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(&cfg.Log)

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	userService := service.NewUserService(userRepo, &cfg.Auth)
	orderService := service.NewOrderService(orderRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		logger,
		cfg.Auth.JWTSecret,
		userRepo,
		userService,
		orderService,
		subscriptionService,
	)

	logger.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info().Msg("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
