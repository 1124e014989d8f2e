package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/db"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
	"github.com/frostlinehq/frostline/internal/service/payment"
	"github.com/frostlinehq/frostline/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	UserRepository    repository.UserRepository
	AuthService       *service.AuthService
	MembershipService *service.MembershipService
	EmailService      *service.EmailService
	LeadService       *service.LeadService
	ContentService    *service.ContentService
	ForumService      *service.ForumService
	PaymentService    payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	membershipRepository := repository.NewMembershipRepository(database)
	leadRepository := repository.NewLeadRepository(database)
	forumRepository := repository.NewForumRepository(database)

	// Storage is optional: without a bucket, leads simply have no photos
	var photoStorage storage.Storage
	if cfg.S3Bucket != "" {
		photoStorage, err = storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.DispatchEmail,
		cfg.ResendAudienceID,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	membershipService := service.NewMembershipService(membershipRepository)

	// Initialize payment provider based on config
	paymentProvider, err := payment.NewProvider(cfg, membershipService, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		membershipService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	leadService := service.NewLeadService(leadRepository, emailService, photoStorage)
	contentService := service.NewContentService(cfg.ContentPath)
	forumService := service.NewForumService(forumRepository)

	return &App{
		Cfg:               cfg,
		DB:                database,
		UserRepository:    userRepository,
		AuthService:       authService,
		MembershipService: membershipService,
		EmailService:      emailService,
		LeadService:       leadService,
		ContentService:    contentService,
		ForumService:      forumService,
		PaymentService:    paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
