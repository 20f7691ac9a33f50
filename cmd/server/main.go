package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkpage.backend/internal/config"
	"linkpage.backend/internal/infrastructure/mail"
	"linkpage.backend/internal/infrastructure/repositories"
	"linkpage.backend/internal/infrastructure/storage"
	"linkpage.backend/internal/interfaces/http/handlers"
	"linkpage.backend/internal/interfaces/http/middleware"
	"linkpage.backend/internal/usecases"
	"linkpage.backend/pkg/jwt"
	"linkpage.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newMailer = func(cfg config.MailConfig) (mail.Mailer, error) { return mail.NewSMTPMailer(cfg) }
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	linkRepo := repositories.NewLinkRepository(db)
	verifyTokenRepo := repositories.NewEmailVerificationTokenRepository(db)
	resetTokenRepo := repositories.NewPasswordResetTokenRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize outbound mail
	mailer, err := newMailer(cfg.Mail)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	mailQueue := mail.NewQueue(mailer, cfg.Frontend.BaseURL, cfg.Mail.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mailQueue.Start(ctx)

	// Initialize avatar storage
	avatarStorage := storage.NewAvatarStorage(cfg.Storage)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, profileRepo, verifyTokenRepo, resetTokenRepo, uow, jwtService, mailQueue)
	userUsecase := usecases.NewUserUsecase(userRepo, profileRepo, linkRepo, avatarStorage)
	profileUsecase := usecases.NewProfileUsecase(profileRepo)
	linkUsecase := usecases.NewLinkUsecase(linkRepo, userRepo, profileRepo, uow)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, cfg.Cookie, cfg.JWT.RefreshExpiry)
	userHandler := handlers.NewUserHandler(userUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	linkHandler := handlers.NewLinkHandler(linkUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.Origins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerRoutes(r, routeDeps{
		authHandler:    authHandler,
		userHandler:    userHandler,
		profileHandler: profileHandler,
		linkHandler:    linkHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		mailQueue.Stop()
		cancel()
	}()

	log.Printf("Linkpage backend starting on port %s", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
