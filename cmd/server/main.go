package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"evalboard/config"
	_ "evalboard/docs"
	authadapter "evalboard/internal/adapters/auth"
	"evalboard/internal/adapters/datasetarchive"
	"evalboard/internal/adapters/email"
	delivery "evalboard/internal/delivery/http"
	"evalboard/internal/delivery/http/controllers"
	"evalboard/internal/delivery/http/middleware"
	"evalboard/internal/repository/postgres"
	"evalboard/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const serviceTimeout = 5 * time.Second

// @title           evalboard API
// @version         1.0
// @description     Backend API for the evalboard observability dashboard: datasets, examples, and bulk split assignment.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	datasetRepo := postgres.NewDatasetRepository(db)
	exampleRepo := postgres.NewExampleRepository(db)
	splitRepo := postgres.NewSplitRepository(db)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	fetcher := datasetarchive.NewHTTPFetcher(&http.Client{Timeout: 30 * time.Second})

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerFromAddress,
		FromName:    cfg.MailerFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, issuer, emailService, logger, cfg.JWTExpiry)
	datasetService := services.NewDatasetService(datasetRepo, exampleRepo, splitRepo, fetcher, serviceTimeout)
	splitService := services.NewSplitService(datasetRepo, splitRepo, serviceTimeout)

	authController := controllers.NewAuthController(logger, authService)
	datasetController := controllers.NewDatasetController(logger, datasetService)
	splitController := controllers.NewSplitController(logger, splitService)

	router := delivery.NewRouter(authController, datasetController, splitController, verifier)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
