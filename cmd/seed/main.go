package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/config"
	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/finance-trivia-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/finance-trivia-bot/internal/infra/sqlite"
	"github.com/aliskhannn/finance-trivia-bot/internal/logger"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	from := flag.String("from", cfg.QuestionsPath, "question corpus to import (.json or .xlsx)")
	sheet := flag.String("sheet", "", "sheet name for .xlsx input (first sheet if empty)")
	to := flag.String("to", cfg.Corpus.Driver, "target database: postgres or sqlite")
	export := flag.String("export", "", "write the corpus to this .xlsx file instead of a database")
	flag.Parse()

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	questions, err := load(*from, *sheet)
	if err != nil {
		lg.Fatal("failed to load corpus", zap.String("from", *from), zap.Error(err))
	}
	lg.Info("corpus loaded", zap.String("from", *from), zap.Int("questions", len(questions)))

	if *export != "" {
		if err := repository.ExportQuestionsXLSX(*export, questions); err != nil {
			lg.Fatal("failed to export corpus", zap.Error(err))
		}
		lg.Info("corpus exported", zap.String("path", *export))
		return
	}

	n, err := seed(ctx, cfg, *to, questions)
	if err != nil {
		lg.Fatal("failed to seed corpus", zap.String("to", *to), zap.Error(err))
	}
	lg.Info("corpus seeded", zap.String("to", *to), zap.Int64("questions", n))
}

// load reads a corpus file and checks that every tier has questions.
func load(path, sheet string) ([]entities.Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		questions, err := repository.LoadQuestionsXLSX(path, sheet)
		if err != nil {
			return nil, err
		}
		if err := repository.CheckCoverage(questions); err != nil {
			return nil, err
		}
		return questions, nil
	case ".json":
		repo, err := repository.NewQuestionRepository(path)
		if err != nil {
			return nil, err
		}
		return repo.GetAll(context.Background())
	default:
		return nil, fmt.Errorf("unsupported corpus file %q", path)
	}
}

func seed(ctx context.Context, cfg *config.Config, driver string, questions []entities.Question) (int64, error) {
	switch driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return 0, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return 0, err
		}
		defer pool.Close()

		repo := pgrepo.NewQuestionRepository(pool, postgres.NewTransactor(pool))
		if err := repo.EnsureSchema(ctx); err != nil {
			return 0, err
		}
		return repo.Seed(ctx, questions)

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return 0, err
		}
		defer func() { _ = db.Close() }()

		return sqlite.NewQuestionRepository(db).Seed(ctx, questions)

	default:
		return 0, fmt.Errorf("%w: cannot seed corpus driver %q", config.ErrInvalidConfig, driver)
	}
}
