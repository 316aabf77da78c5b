package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/handler"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage/sqlite"
	"github.com/tallyhq/tally/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; production relies on real environment variables.
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/tally.db")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)

	groupHandler := &handler.GroupHandler{Groups: service.NewGroupService(store)}
	expenseHandler := &handler.ExpenseHandler{
		Expenses:  service.NewExpenseService(store),
		Directory: service.NewDirectory(store),
	}
	balanceHandler := &handler.BalanceHandler{Balances: service.NewBalanceService(store)}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(middleware.Metrics())
	app.Use(middleware.Logging())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	api := app.Group("/api", middleware.RequireAuth(jwtManager, store))

	api.Post("/groups", groupHandler.Create)
	api.Get("/groups", groupHandler.List)
	api.Get("/groups/:id", groupHandler.Get)
	api.Post("/groups/:id/join", groupHandler.Join)
	api.Post("/groups/:id/leave", groupHandler.Leave)
	api.Get("/groups/:id/members", groupHandler.Members)

	api.Get("/groups/:id/expenses", expenseHandler.ListExpenses)
	api.Post("/groups/:id/expenses", expenseHandler.CreateExpense)
	api.Post("/groups/:id/settle", expenseHandler.Settle)
	api.Get("/groups/:id/balances", balanceHandler.GroupBalances)

	api.Get("/balance", balanceHandler.GlobalBalance)
	api.Get("/activity", expenseHandler.Activity)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", port)
		if err := app.Listen(":" + port); err != nil {
			slog.Error("Server failed", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutting down server")

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := store.Close(); err != nil {
		slog.Error("Failed to close storage", "error", err)
	}
	slog.Info("Server exited")
}
