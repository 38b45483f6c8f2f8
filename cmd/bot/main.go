package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrainer/internal/config"
	"wordtrainer/internal/conversation"
	"wordtrainer/internal/handler"
	"wordtrainer/internal/middleware"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/scheduler"
	"wordtrainer/internal/service"
	"wordtrainer/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting word trainer bot", zap.String("storage", cfg.StorageDriver))

	// Initialize repositories
	userRepo, wordRepo, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStorage()

	// Initialize services
	vocabulary := service.NewVocabularyService(userRepo, wordRepo)
	quiz := service.NewQuizService(wordRepo)
	maintenance := service.NewMaintenanceService(userRepo, cfg.StateTTL, logger)

	orchestrator := session.NewOrchestrator(
		vocabulary,
		quiz,
		conversation.NewStore(userRepo),
		conversation.NewLocker(),
		cfg.StudyDelay,
		logger,
	)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("Bot handler error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.RegisterMiddleware(vocabulary, logger))
	h := handler.NewHandler(bot, orchestrator, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start maintenance jobs in background
	jobs := scheduler.New(maintenance, time.Hour, logger)
	if err := jobs.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	jobs.Stop()

	logger.Info("Bot stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openStorage builds the repositories for the configured driver
func openStorage(cfg *config.Config, logger *zap.Logger) (repository.UserRepository, repository.WordRepository, func(), error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		db := memory.NewDB(memory.SeedWords)
		return memory.NewUserRepo(db), memory.NewWordRepo(db), func() {}, nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	return postgres.NewUserRepo(db), postgres.NewWordRepo(db), func() { db.Close() }, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates the schema and seed vocabulary
func runMigrations(db *sql.DB, path string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
