package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/extraction"
	"pdfdash-backend/internal/llm"
	"pdfdash-backend/internal/llm/gemini"
	"pdfdash-backend/internal/pipeline"
	"pdfdash-backend/internal/records"
	"pdfdash-backend/internal/services/health"
	"pdfdash-backend/internal/shared/config"
	"pdfdash-backend/internal/shared/server"
	"pdfdash-backend/internal/shared/storage/db"
)

// App holds shared dependencies with explicit lifecycle: built once at
// startup, closed at shutdown.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	RecordsRepo     records.Repo
	RecordsService  *records.Service
	RecordsHandler  *records.Handler
	Generator       llm.Generator
	Extractor       *extraction.Client
	PipelineService *pipeline.Service
	PipelineHandler *pipeline.Handler
	Health          *health.Service
}

// Build wires configuration into a ready-to-serve App.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo records.Repo
	if sqlDB != nil {
		repo = &records.PGRepo{DB: sqlDB}
	} else {
		repo = records.NewMemoryRepo()
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		RecordsRepo:    repo,
		RecordsService: records.NewService(repo),
		Health:         health.NewService(cfg.Env, cfg.Version),
	}
	app.RecordsHandler = records.NewHandler(app.RecordsService)

	if err := buildPipeline(app, cfg); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          app.Health,
		RecordsHandler:  app.RecordsHandler,
		PipelineHandler: app.PipelineHandler,
	})
	return app, nil
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: failed to connect database, falling back to memory: %v", err)
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

func buildPipeline(app *App, cfg config.Config) error {
	if cfg.GeminiAPIKey == "" {
		if !cfg.IsDevLike() {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
		log.Printf("bootstrap: GEMINI_API_KEY empty; extraction endpoint disabled")
		return nil
	}

	gen, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiTimeout)
	if err != nil {
		return err
	}
	app.Generator = gen
	app.Extractor = extraction.NewClient(gen, cfg.GeminiModels, cfg.MaxPromptChars)
	app.PipelineService = pipeline.NewService(app.Extractor)
	app.PipelineHandler = pipeline.NewHandler(app.PipelineService)
	return nil
}
