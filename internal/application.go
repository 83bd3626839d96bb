package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	solverService, closeCache, err := newSolverService(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeCache()

	botService := service.NewBotService(solverService)
	gameUseCase := usecase.NewGameUseCase(logger, solverService, botService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "parallel_search", conf.Search.Parallel)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameUseCase)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// newSolverService builds the solver, backed by the redis solution cache when it is enabled.
func newSolverService(ctx context.Context, logger *slog.Logger, conf *config.Config) (service.SolverService, func(), error) {
	log := logger.With("component", "app")
	searcher := minimax.NewSolver(minimax.WithParallel(conf.Search.Parallel))

	if !conf.Redis.Enabled {
		log.Info("Solution cache disabled")
		return service.NewSolverService(logger, searcher, nil), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeCache := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	log.Info("Solution cache enabled", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.TTL)
	solutionRepo := repository.NewSolutionRepository(redisStorage.Connection, conf.Redis.TTL)

	return service.NewSolverService(logger, searcher, solutionRepo), closeCache, nil
}
