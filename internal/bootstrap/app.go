package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"capture-backend/internal/auth"
	"capture-backend/internal/ocr"
	"capture-backend/internal/records"
	sharedauth "capture-backend/internal/shared/auth"
	"capture-backend/internal/shared/config"
	"capture-backend/internal/shared/server"
	"capture-backend/internal/shared/storage/db"
	"capture-backend/internal/shared/storage/object"
	localstore "capture-backend/internal/shared/storage/object/local"
	s3store "capture-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	JWT    *sharedauth.Manager

	UsersRepo   auth.UsersRepo
	TokensRepo  auth.TokensRepo
	RecordsRepo records.Repo

	AuthService    *auth.Service
	RecordsService *records.Service
	OCRService     *ocr.Service

	AuthHandler    *auth.Handler
	RecordsHandler *records.Handler
	OCRHandler     *ocr.Handler
}

// Overrides lets callers swap externals, mainly for tests.
type Overrides struct {
	OCREngine ocr.Engine
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith is Build with explicit overrides.
func BuildWith(cfg config.Config, over Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if !isDevLike(cfg.Env) &&
		(strings.TrimSpace(cfg.AccessTokenSecret) == "" || strings.TrimSpace(cfg.RefreshTokenSecret) == "") {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required in %s", cfg.Env)
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

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		JWT: sharedauth.NewManager(
			cfg.AccessTokenSecret,
			cfg.RefreshTokenSecret,
			cfg.AccessTokenTTL,
			cfg.RefreshTokenTTL,
		),
	}

	buildServices(app, over)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		JWT:            app.JWT,
		AuthHandler:    app.AuthHandler,
		RecordsHandler: app.RecordsHandler,
		OCRHandler:     app.OCRHandler,
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
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App, over Overrides) {
	if app.DB != nil {
		app.UsersRepo = &auth.PGUsersRepo{DB: app.DB}
		app.TokensRepo = &auth.PGTokensRepo{DB: app.DB}
		app.RecordsRepo = &records.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = auth.NewMemoryUsersRepo()
		app.TokensRepo = auth.NewMemoryTokensRepo()
		app.RecordsRepo = records.NewMemoryRepo()
	}

	engine := over.OCREngine
	if engine == nil {
		engine = ocr.NewTesseractEngine()
	}

	app.AuthService = auth.NewService(app.UsersRepo, app.TokensRepo, app.JWT, app.RecordsRepo)
	app.RecordsService = records.NewService(app.RecordsRepo)
	app.OCRService = ocr.NewService(app.Store, engine, app.Config.OCRLanguages, app.Config.OCRTimeout)

	app.AuthHandler = auth.NewHandler(app.AuthService)
	app.RecordsHandler = records.NewHandler(app.RecordsService)
	app.OCRHandler = ocr.NewHandler(app.OCRService, app.Config.MaxUploadBytes)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
