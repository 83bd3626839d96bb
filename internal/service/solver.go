package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type SolverService interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type solutionRepo interface {
	Save(ctx context.Context, solution *entity.Solution) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type searcher interface {
	Solve(ctx context.Context, board entity.Board) (minimax.Result, error)
}

type solverService struct {
	logger *slog.Logger

	searcher     searcher
	solutionRepo solutionRepo
}

// NewSolverService - solutionRepo may be nil, in which case every board is searched.
func NewSolverService(logger *slog.Logger, searcher searcher, solutionRepo solutionRepo) SolverService {
	return &solverService{
		logger:       logger.With("component", "solver"),
		searcher:     searcher,
		solutionRepo: solutionRepo,
	}
}

func (that *solverService) Solve(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	log := that.logger.With("method", "Solve", "board", board.String())

	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if tictactoe.IsTerminal(board) {
		return &entity.Solution{
			Board:  board,
			Player: tictactoe.ActivePlayer(board),
			Value:  tictactoe.Utility(board),
		}, nil
	}

	if that.solutionRepo != nil {
		cached, err := that.solutionRepo.GetByBoard(ctx, board)
		switch {
		case err == nil:
			log.Debug("solution found in cache")
			return cached, nil
		case errors.Is(err, repository.ErrSolutionNotFound):
		default:
			log.Error("failed to read cached solution", "error", err)
		}
	}

	result, err := that.searcher.Solve(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to search board: %w", err)
	}

	solution := &entity.Solution{
		Board:  board,
		Player: tictactoe.ActivePlayer(board),
		Value:  result.Value,
		Nodes:  result.Nodes,
	}
	if result.Found {
		action := result.Action
		solution.Action = &action
	}

	log.Debug("board solved", "action", solution.Action, "value", solution.Value, "nodes", solution.Nodes)

	if that.solutionRepo != nil {
		if err = that.solutionRepo.Save(ctx, solution); err != nil {
			log.Error("failed to cache solution", "error", err)
		}
	}

	return solution, nil
}
