package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/applicants"
	googleauth "github.com/Mareenraj/ATS/internal/auth"
	"github.com/Mareenraj/ATS/internal/dashboard"
	"github.com/Mareenraj/ATS/internal/fit"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/llm"
	"github.com/Mareenraj/ATS/internal/llm/gemini"
	"github.com/Mareenraj/ATS/internal/llm/openai"
	"github.com/Mareenraj/ATS/internal/seed"
	"github.com/Mareenraj/ATS/internal/shared/config"
	"github.com/Mareenraj/ATS/internal/shared/resilience"
	"github.com/Mareenraj/ATS/internal/shared/server"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/session"
	"github.com/Mareenraj/ATS/internal/shared/storage/db"
	"github.com/Mareenraj/ATS/internal/shared/storage/object"
	localstore "github.com/Mareenraj/ATS/internal/shared/storage/object/local"
	s3store "github.com/Mareenraj/ATS/internal/shared/storage/object/s3"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
	"github.com/Mareenraj/ATS/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Sessions session.Store

	UsersRepo      users.Repo
	JobsRepo       jobs.Repo
	ApplicantsRepo applicants.Repo

	UsersService      *users.Service
	JobsService       *jobs.Service
	ApplicantsService *applicants.Service
	DashboardService  *dashboard.Service

	closers []func() error
}

// NewApp connects storage, builds services and wires the HTTP router.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = store

	sessions, err := buildSessions(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Sessions = sessions
	if rs, ok := sessions.(*session.RedisStore); ok {
		app.closers = append(app.closers, rs.Close)
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	buildServices(app, analyzer)
	return app, nil
}

// Close releases the database pool and session client.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Seeder returns a loader writing through the app's repositories.
func (a *App) Seeder() *seed.Loader {
	return &seed.Loader{
		Users:      a.UsersService,
		Jobs:       a.JobsService,
		Applicants: a.ApplicantsRepo,
		Store:      a.Store,
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
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

func buildSessions(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.SessionStore == "redis" {
		return session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
	}
	return session.NewMemoryStore(cfg.SessionTTL, nil), nil
}

// buildAnalyzer leaves Generator nil when no key is configured; the analyzer
// then reports configuration_missing instead of calling out.
func buildAnalyzer(cfg config.Config) (*fit.Analyzer, error) {
	analyzer := &fit.Analyzer{
		APIKey:   cfg.LLMAPIKey,
		KeyEnv:   config.APIKeyEnv(cfg.LLMProvider),
		Timeout:  cfg.LLMTimeout,
		Breakers: resilience.NewBreakers(resilience.DefaultConfig()),
	}
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		return analyzer, nil
	}

	var (
		gen llm.Generator
		err error
	)
	switch cfg.LLMProvider {
	case "openai":
		gen, err = openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		gen, err = gemini.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}
	if err != nil {
		return nil, err
	}
	analyzer.Generator = gen
	return analyzer, nil
}

func buildServices(app *App, analyzer *fit.Analyzer) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicantsRepo = &applicants.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ApplicantsRepo = applicants.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.JobsService = jobs.NewService(app.JobsRepo, app.ApplicantsRepo)
	app.ApplicantsService = applicants.NewService(
		app.ApplicantsRepo,
		app.JobsService,
		app.UsersService,
		app.Store,
		app.Sessions,
		analyzer,
	)
	app.JobsService.Applicants = app.ApplicantsService
	app.DashboardService = dashboard.NewService(app.JobsService, app.ApplicantsService)

	googleAuth := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		UserHandler:      users.NewHandler(app.UsersService),
		JobHandler:       jobs.NewHandler(app.JobsService),
		ApplicantHandler: applicants.NewHandler(app.ApplicantsService),
		DashboardHandler: dashboard.NewHandler(app.DashboardService),
		GoogleAuth:       googleAuth,
		RateLimiter:      middleware.NewRateLimiter(nil),
	})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
