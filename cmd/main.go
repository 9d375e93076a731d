package main

import (
	"chat-accounts/api"
	"chat-accounts/auth"
	"chat-accounts/internal"
	"chat-accounts/repositories"
	"chat-accounts/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred cleanups run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories
	accountRepository := repositories.NewAccountRepository(db, log)
	messageRepository, err := repositories.NewMessageRepository(db, log)
	if err != nil {
		return fmt.Errorf("message repository: %w", err)
	}
	defer closeQuietly(log, "message sequence", messageRepository.Close)
	notificationRepository, err := repositories.NewNotificationRepository(db, log)
	if err != nil {
		return fmt.Errorf("notification repository: %w", err)
	}
	defer closeQuietly(log, "notification sequence", notificationRepository.Close)

	// 4. Services
	clock := internal.SystemClock{}
	ids := internal.UUIDGenerator{}
	signer := auth.NewJWTSigner(config.JWTSecret, config.AuthTokenDuration, clock)

	accountService := services.NewAccountService(accountRepository, ids)
	authService := services.NewAuthService(accountService, signer)
	notificationService := services.NewNotificationService(accountService, notificationRepository, ids, clock)
	messageService := services.NewMessageService(accountService, notificationService, messageRepository, ids, clock)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. HTTP Server Setup
	router := api.NewRouter(log,
		api.RouterOptions{Prefix: config.APIPrefix, AllowedOrigins: config.Origins()},
		api.NewUsersAPI(accountService, authService, log),
		api.NewAuthAPI(authService, signer, log),
		api.NewMessagesAPI(messageService, log),
		api.NewNotificationsAPI(notificationService, log),
	)
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 7. gRPC health Server Setup
	listener, err := net.Listen("tcp", config.HealthAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.HealthAddress(), err)
	}
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	errChan := make(chan error, 2)
	go func() {
		log.Info("Starting gRPC health server", "address", config.HealthAddress())
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		log.Info("Starting HTTP server", "address", config.Address(), "prefix", config.APIPrefix, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// 8. Wait for Stop or Error
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case runErr = <-errChan:
		log.Error("Server failed, shutting down", "error", runErr)
	}

	// 9. Final Cleanup
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown did not complete", "error", err)
	}
	grpcServer.GracefulStop()
	log.Info("Program stopped cleanly")

	return runErr
}

func closeQuietly(log *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Error("Release failed", "resource", name, "error", err)
	}
}
