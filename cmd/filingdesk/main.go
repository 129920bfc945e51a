package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kolade-dev/filingdesk/internal/api"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/db"
	"github.com/kolade-dev/filingdesk/internal/reminder"
	"github.com/kolade-dev/filingdesk/internal/services"
	"github.com/kolade-dev/filingdesk/internal/store"
)

func main() {
	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "filingdesk.db"))
	port := getEnv("PORT", "8080")
	storage := getEnv("STORAGE", "sqlite")
	seedDemo := getEnv("SEED_DEMO_DATA", "true") == "true"
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"

	timeSource := clock.System{}

	var users services.AuthCredentialStore
	var adminUsers services.AdminCredentialStore
	var setupUsers services.SetupCredentialStore
	var records interface {
		services.RecordStore
		CountRecords() (int64, error)
	}

	switch storage {
	case "memory":
		memoryUsers := store.NewUserStore()
		memoryCompanies := store.NewCompanyStore()
		users, adminUsers, setupUsers = memoryUsers, memoryUsers, memoryUsers
		records = memoryCompanies
	default:
		database, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatalf("database init failed: %v", err)
		}
		stores := db.NewStores(database)
		users, adminUsers, setupUsers = stores.Users, stores.Users, stores.Users
		records = stores.Companies
	}

	if seedDemo {
		setup := services.NewSetupService(setupUsers, records, timeSource)
		if err := setup.SeedDemoData(); err != nil {
			log.Fatalf("demo seed failed: %v", err)
		}
	}

	authService := services.NewAuthService(users, timeSource, services.ConsoleSender{})
	adminService := services.NewAdminService(adminUsers, timeSource)
	recordService := services.NewRecordService(records, timeSource)

	drafts, err := reminder.NewTemplateGenerator()
	if err != nil {
		log.Fatalf("reminder generator init failed: %v", err)
	}

	handler := api.NewHandler(authService, adminService, recordService, drafts, secretKey, cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Filingdesk",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Filingdesk listening on http://0.0.0.0:%s (storage: %s)", port, storage)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
