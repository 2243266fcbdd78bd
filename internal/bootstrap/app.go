package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/authn"
	"github.com/KarimovMurodilla/lead-management-system/internal/leads"
	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
	"github.com/KarimovMurodilla/lead-management-system/internal/mail/logsender"
	"github.com/KarimovMurodilla/lead-management-system/internal/mail/mailjet"
	smtpmail "github.com/KarimovMurodilla/lead-management-system/internal/mail/smtp"
	"github.com/KarimovMurodilla/lead-management-system/internal/notifications"
	sharedauth "github.com/KarimovMurodilla/lead-management-system/internal/shared/auth"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/config"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/db"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/object"
	localstore "github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/object/local"
	s3store "github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/object/s3"
	"github.com/KarimovMurodilla/lead-management-system/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Issuer *sharedauth.Issuer
}

type appDeps struct {
	leadsRepo leads.Repo
	usersRepo users.Repo
	blacklist authn.Blacklist
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	issuer, err := sharedauth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	deps := buildRepos(sqlDB)

	mailer := buildMailer(cfg)
	notifier := notifications.NewService(mailer, notifications.Config{
		FromEmail:     cfg.FromEmail,
		FromName:      cfg.FromName,
		AttorneyEmail: cfg.AttorneyEmail,
	})

	leadsSvc := &leads.Service{
		Store:    store,
		Repo:     deps.leadsRepo,
		Notifier: notifier,
	}
	authSvc := authn.NewService(deps.usersRepo, issuer, deps.blacklist)

	if err := authSvc.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Issuer: issuer,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Issuer:       issuer,
		Store:        store,
		LeadsHandler: leads.NewHandler(leadsSvc, cfg.MaxResumeBytes),
		AuthHandler:  authn.NewHandler(authSvc),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRepos(sqlDB *sql.DB) appDeps {
	if sqlDB != nil {
		return appDeps{
			leadsRepo: &leads.PGRepo{DB: sqlDB},
			usersRepo: &users.PGRepo{DB: sqlDB},
			blacklist: &authn.PGBlacklist{DB: sqlDB},
		}
	}
	return appDeps{
		leadsRepo: leads.NewMemoryRepo(),
		usersRepo: users.NewMemoryRepo(),
		blacklist: authn.NewMemoryBlacklist(),
	}
}

func buildMailer(cfg config.Config) mail.Sender {
	switch cfg.MailProvider {
	case "mailjet":
		return mailjet.NewClient(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailjetBaseURL)
	case "smtp":
		return smtpmail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	default:
		return logsender.New()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
