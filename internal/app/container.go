package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"role-match/internal/config"
	"role-match/internal/database"
	"role-match/internal/database/migration"
	dbpostgres "role-match/internal/database/postgres"
	"role-match/internal/domain/learningpath"
	"role-match/internal/infrastructure/cache"
	"role-match/internal/infrastructure/catalog"
	"role-match/internal/infrastructure/export"
	"role-match/internal/pipeline"
	"role-match/internal/pkg/jwt"
	"role-match/internal/repository"
	"role-match/internal/source"
	"role-match/internal/usecase"
	"role-match/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Recommendations *usecase.Recommendation
	LearningPaths   *usecase.LearningPath
	Pipeline        *usecase.Pipeline
}

// NewContainer connects storage, applies migrations and wires the usecases.
func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cat, err := catalog.Load(cfg.Data.CatalogPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	engine := pipeline.NewRecommendationPipeline(
		learningpath.NewAnnotator(cat, ""),
		[]pipeline.Sink{
			export.NewFileWriter(cfg.Data.OutputDir),
			repository.NewPostgresSnapshotRepository(db),
		},
		logger,
	)

	queries := repository.NewPostgresRecommendationQueryRepository(db)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Hub:    hub,

		Recommendations: usecase.NewRecommendationUsecase(queries, redis, cfg.Redis.TTL, cfg.Data.TopK, logger),
		LearningPaths:   usecase.NewLearningPathUsecase(queries, logger),
		Pipeline: usecase.NewPipelineUsecase(engine, repository.NewPostgresPipelineRunRepository(db), usecase.PipelineOptions{
			Params: pipeline.Params{
				Files:    source.DefaultFiles(cfg.Data.Dir),
				Baseline: cfg.Data.BaselineSkill,
				Workers:  cfg.Data.MatchingWorkers,
			},
			Cache:    redis,
			Notifier: ws.NewNotifier(hub, logger),
			Logger:   logger,
		}),
	}

	if cfg.Auth.OperatorTokenSecret != "" {
		c.JWT = jwt.NewHMACService(cfg.Auth.OperatorTokenSecret, cfg.Auth.OperatorTokenTTL)
	} else {
		logger.Printf("[Auth] OPERATOR_TOKEN_SECRET not set, pipeline trigger disabled")
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Pipeline != nil {
		c.Pipeline.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
