package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type GameUseCase interface {
	Evaluate(ctx context.Context, board entity.Board) (*entity.Position, error)
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
	PlayTurn(ctx context.Context, board entity.Board, action entity.Action) (*entity.TurnResult, error)
	SelfPlay(ctx context.Context, board entity.Board) (*entity.Playout, error)
}

type solverService interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type botService interface {
	MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error)
}

type gameUseCase struct {
	logger *slog.Logger

	solverService solverService
	botService    botService
}

func NewGameUseCase(logger *slog.Logger, solverService solverService, botService botService) GameUseCase {
	return &gameUseCase{
		logger:        logger.With("component", "game"),
		solverService: solverService,
		botService:    botService,
	}
}

// Evaluate - describes a board: who moves, what is legal, whether it is over and the best reply.
func (that *gameUseCase) Evaluate(ctx context.Context, board entity.Board) (*entity.Position, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	winner, _ := tictactoe.Winner(board)
	position := &entity.Position{
		Board:   board,
		Player:  tictactoe.ActivePlayer(board),
		Actions: tictactoe.LegalActions(board),
		Winner:  winner,
		Status:  statusOf(board),
	}

	if position.IsFinished() {
		utility := tictactoe.Utility(board)
		position.Utility = &utility
		position.Actions = []entity.Action{}
		return position, nil
	}

	solution, err := that.solverService.Solve(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to solve board: %w", err)
	}
	position.Solution = solution

	return position, nil
}

// Solve - returns the optimal action for the active player; terminal boards get none.
func (that *gameUseCase) Solve(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	solution, err := that.solverService.Solve(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to solve board: %w", err)
	}
	return solution, nil
}

// PlayTurn - applies the caller's action and, if the game goes on, answers with the bot's optimal action.
func (that *gameUseCase) PlayTurn(ctx context.Context, board entity.Board, action entity.Action) (*entity.TurnResult, error) {
	log := that.logger.With("method", "PlayTurn")

	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if tictactoe.IsTerminal(board) {
		return nil, apperror.ErrGameFinished
	}

	next, err := tictactoe.Transition(board, action)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	result := &entity.TurnResult{
		Board:  next,
		Action: action,
	}

	if !tictactoe.IsTerminal(next) {
		reply, botAction, botErr := that.botService.MakeTurn(ctx, next)
		if botErr != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", botErr)
		}

		result.Board = reply
		result.BotAction = &botAction
	}

	result.Winner, _ = tictactoe.Winner(result.Board)
	result.Status = statusOf(result.Board)

	log.Debug("turn played", "action", action, "bot_action", result.BotAction, "status", result.Status)

	return result, nil
}

// SelfPlay - lets the bot play both sides from board until the game ends.
func (that *gameUseCase) SelfPlay(ctx context.Context, board entity.Board) (*entity.Playout, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	playout := &entity.Playout{
		Start:   board,
		Actions: []entity.Action{},
	}

	current := board
	for !tictactoe.IsTerminal(current) {
		next, action, err := that.botService.MakeTurn(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("bot failed to make turn %d: %w", len(playout.Actions)+1, err)
		}

		playout.Actions = append(playout.Actions, action)
		current = next
	}

	playout.Final = current
	playout.Winner, _ = tictactoe.Winner(current)
	playout.Utility = tictactoe.Utility(current)

	return playout, nil
}

func statusOf(board entity.Board) string {
	if tictactoe.IsTerminal(board) {
		return entity.StatusFinished
	}
	return entity.StatusOngoing
}
