package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreviews/internal/book"
	apphttp "bookreviews/internal/http"
	"bookreviews/internal/review"
	"bookreviews/internal/store"

	"github.com/joho/godotenv"
)

const repositoryTimeout = 3 * time.Second

func main() {
	_ = godotenv.Load(".env.local")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	serverAddress := getEnv("APP_ADDR", ":8080")
	databasePath := getEnv("DB_PATH", "books.db")

	db, err := store.Open(databasePath)
	if err != nil {
		logger.Error("cannot open database", "path", databasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database ready", "path", databasePath)

	bookRepository := book.NewSQLiteRepo(db, repositoryTimeout)
	reviewRepository := review.NewSQLiteRepo(db, repositoryTimeout)

	handler := apphttp.NewRouter(bookRepository, reviewRepository, logger)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", serverAddress)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
