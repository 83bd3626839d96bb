package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error)
}

type botService struct {
	solver SolverService
}

func NewBotService(solver SolverService) BotService {
	return &botService{
		solver: solver,
	}
}

// MakeTurn - plays the optimal action for whichever player is to move.
func (that *botService) MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error) {
	solution, err := that.solver.Solve(ctx, board)
	if err != nil {
		return board, entity.Action{}, fmt.Errorf("bot failed to solve board: %w", err)
	}

	if solution.Action == nil {
		return board, entity.Action{}, ErrNoAvailableMoves
	}

	next, err := tictactoe.Transition(board, *solution.Action)
	if err != nil {
		return board, entity.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return next, *solution.Action, nil
}
