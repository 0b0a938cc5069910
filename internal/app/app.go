package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/db"
	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/middleware"
	"github.com/alloyforge/metallurgy-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Handlers Handlers

	pg *db.PostgresService
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)

	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		AuthMiddleware:    middleware.NewAuthMiddleware(log, serviceset.Auth),
		AuthHandler:       handlerset.Auth,
		ElementHandler:    handlerset.Element,
		AlloyHandler:      handlerset.Alloy,
		PredictionHandler: handlerset.Prediction,
		PatentHandler:     handlerset.Patent,
		PersonHandler:     handlerset.Person,
		RoleHandler:       handlerset.Role,
		MLModelHandler:    handlerset.MLModel,
		PredictHandler:    handlerset.Predict,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Handlers: handlerset,
		pg:       pg,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
