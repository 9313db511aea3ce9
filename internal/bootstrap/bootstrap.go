// Package bootstrap wires configuration, storage and services together
// for the API server.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/eduadmin/enroll/internal/app/controllers"
	appMigrations "github.com/eduadmin/enroll/internal/app/migrations"
	appRepos "github.com/eduadmin/enroll/internal/app/repositories"
	appRoutes "github.com/eduadmin/enroll/internal/app/routes"
	appServices "github.com/eduadmin/enroll/internal/app/services"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/config"
	"github.com/eduadmin/enroll/internal/db"
	appMiddleware "github.com/eduadmin/enroll/internal/middleware"
	pkgAuth "github.com/eduadmin/enroll/internal/pkg/auth"
	"github.com/eduadmin/enroll/internal/pkg/email"
	"github.com/eduadmin/enroll/internal/pkg/logger"
	"github.com/eduadmin/enroll/internal/pkg/sms"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	SessionStore           *sessions.Store
	JWTService             *pkgAuth.JWTService
	OnboardingService      *appServices.OnboardingService
	VerificationService    *appServices.VerificationService
	PaymentService         *appServices.PaymentService
	OnboardingController   *appControllers.OnboardingController
	VerificationController *appControllers.VerificationController
	PaymentController      *appControllers.PaymentController
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, "migrations"); err != nil {
		lgr.Error().Err(err).Msg("Failed to run migrations")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Database ready.")
	return dbPool, nil
}

// BuildDependencies constructs repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)

	sessionTTL, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	codeTTL, err := time.ParseDuration(cfg.Verification.CodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}
	resendInterval, err := time.ParseDuration(cfg.Verification.ResendInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid verification resend interval: %w", err)
	}
	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	sessionStore := sessions.NewStore(sessionTTL, lgr)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	mailer := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	gateway := sms.NewTwilioGateway(
		cfg.SMS.TwilioAccountSID,
		cfg.SMS.TwilioAuthToken,
		cfg.SMS.FromNumber,
		lgr,
	)

	onboardingService := appServices.NewOnboardingService(
		sessionStore,
		repos.UserRepository,
		repos.StudentRepository,
		repos.ParentInfoRepository,
		jwtService,
		mailer,
		lgr,
	)
	verificationService := appServices.NewVerificationService(
		repos.PhoneVerificationRepository,
		gateway,
		codeTTL,
		resendInterval,
		lgr,
	)
	paymentService := appServices.NewPaymentService(
		repos.PaymentRepository,
		appServices.NewStripeCheckoutClient(cfg.Stripe.SecretKey),
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		lgr,
	)

	return &Dependencies{
		Repos:                  repos,
		SessionStore:           sessionStore,
		JWTService:             jwtService,
		OnboardingService:      onboardingService,
		VerificationService:    verificationService,
		PaymentService:         paymentService,
		OnboardingController:   appControllers.NewOnboardingController(onboardingService, lgr),
		VerificationController: appControllers.NewVerificationController(onboardingService, verificationService, lgr),
		PaymentController:      appControllers.NewPaymentController(paymentService, lgr),
		Logger:                 lgr,
	}, nil
}

// StartJanitors launches background maintenance loops. They stop when ctx
// is cancelled.
func (d *Dependencies) StartJanitors(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := d.VerificationService.PurgeExpired(ctx); err != nil {
					d.Logger.Warn().Err(err).Msg("Failed to purge expired verifications")
				}
			}
		}
	}()
}

// Close releases resources owned by the dependency container.
func (d *Dependencies) Close() {
	d.SessionStore.Close()
}

// SetupRouter creates the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(
		router,
		deps.OnboardingController,
		deps.VerificationController,
		deps.PaymentController,
	)

	lgr.Info().Msg("Router configured")
	return router
}
