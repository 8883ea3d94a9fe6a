// Package app wires the quiz engine from configuration for the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/config"
	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/i18n"
	"github.com/aliskhannn/finance-trivia-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/finance-trivia-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/finance-trivia-bot/internal/infra/sqlite"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
	"github.com/aliskhannn/finance-trivia-bot/internal/storage"
)

// Core is the engine shared by the bot and the API.
type Core struct {
	Quiz       *service.QuizService
	Janitor    *service.Janitor
	Translator *i18n.Translator
	Resources  *repository.ResourceRepository

	closers []func()
}

// Close releases the corpus backend.
func (c *Core) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build opens the configured corpus and assembles the quiz service.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Core, error) {
	core := &Core{}

	repo, err := core.openCorpus(ctx, cfg, logger)
	if err != nil {
		core.Close()
		return nil, err
	}

	tr, err := i18n.New()
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	resources, err := repository.NewResourceRepository()
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("load resources: %w", err)
	}

	store := storage.NewGameStorage()
	quizCfg := service.QuizConfig{
		DefaultQuestions: cfg.Quiz.DefaultQuestions,
		MinQuestions:     cfg.Quiz.MinQuestions,
		MaxQuestions:     cfg.Quiz.MaxQuestions,
	}

	core.Translator = tr
	core.Resources = resources
	core.Quiz = service.NewQuizService(service.NewDealer(repo), store, tr, quizCfg, logger)
	core.Janitor = service.NewJanitor(store, cfg.Quiz.IdleTTL, cfg.Quiz.JanitorSchedule, logger)

	return core, nil
}

func (c *Core) openCorpus(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.QuestionRepository, error) {
	switch cfg.Corpus.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)

		repo := pgrepo.NewQuestionRepository(pool, postgres.NewTransactor(pool))
		if err := checkCorpus(ctx, repo); err != nil {
			return nil, err
		}
		logger.Info("question corpus ready", zap.String("driver", cfg.Corpus.Driver))
		return repo, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		c.closers = append(c.closers, func() { _ = db.Close() })

		repo := sqlite.NewQuestionRepository(db)
		if err := checkCorpus(ctx, repo); err != nil {
			return nil, err
		}
		logger.Info("question corpus ready",
			zap.String("driver", cfg.Corpus.Driver),
			zap.String("path", cfg.SQLite.Path),
		)
		return repo, nil

	default:
		repo, err := repository.NewQuestionRepository(cfg.QuestionsPath)
		if err != nil {
			return nil, fmt.Errorf("load questions: %w", err)
		}
		logger.Info("question corpus ready",
			zap.String("driver", config.DriverFile),
			zap.Int("questions", repo.Count()),
		)
		return repo, nil
	}
}

type corpusLister interface {
	GetAll(ctx context.Context) ([]entities.Question, error)
}

// checkCorpus fails when a seeded database leaves a language or difficulty empty.
func checkCorpus(ctx context.Context, repo corpusLister) error {
	all, err := repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return repository.CheckCoverage(all)
}
