package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
)

const (
	x = entity.MarkX
	o = entity.MarkO
	e = entity.Empty
)

var errSomeError = errors.New("some error")

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error) {
	args := that.Called(ctx, board)
	return args.Get(0).(entity.Board), args.Get(1).(entity.Action), args.Error(2)
}

func newUseCase() GameUseCase {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	solver := service.NewSolverService(logger, minimax.NewSolver(), nil)

	return NewGameUseCase(logger, solver, service.NewBotService(solver))
}

func TestGameUseCase_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("Ongoing board", func(t *testing.T) {
		// Given: X to move with a win available
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		// When: evaluating the board
		position, err := newUseCase().Evaluate(ctx, board)

		// Then: the position should describe an ongoing game with X winning at (0,2)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, position.Player)
		assert.Equal(t, entity.StatusOngoing, position.Status)
		assert.Len(t, position.Actions, 5)
		assert.Nil(t, position.Utility)
		require.NotNil(t, position.Solution)
		require.NotNil(t, position.Solution.Action)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, *position.Solution.Action)
		assert.Equal(t, 1, position.Solution.Value)
	})

	t.Run("Finished board", func(t *testing.T) {
		// Given: X owns column 0
		board := entity.Board{
			{x, o, e},
			{x, o, e},
			{x, e, e},
		}

		// When: evaluating the board
		position, err := newUseCase().Evaluate(ctx, board)

		// Then: X should be the winner with utility 1 and no further actions
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, position.Winner)
		assert.Equal(t, entity.StatusFinished, position.Status)
		assert.Empty(t, position.Actions)
		require.NotNil(t, position.Utility)
		assert.Equal(t, 1, *position.Utility)
		assert.Nil(t, position.Solution)
	})

	t.Run("Error on malformed board", func(t *testing.T) {
		board := entity.Board{
			{x, x, x},
			{x, e, e},
			{e, e, e},
		}

		_, err := newUseCase().Evaluate(ctx, board)

		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})
}

func TestGameUseCase_Solve(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the optimal action", func(t *testing.T) {
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		solution, err := newUseCase().Solve(ctx, board)

		require.NoError(t, err)
		require.NotNil(t, solution.Action)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, *solution.Action)
	})

	t.Run("Error on malformed board", func(t *testing.T) {
		board := entity.Board{
			{o, o, e},
			{e, e, e},
			{e, e, e},
		}

		_, err := newUseCase().Solve(ctx, board)

		assert.ErrorIs(t, err, apperror.ErrMalformedBoard)
	})
}

func TestGameUseCase_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot replies to the caller's action", func(t *testing.T) {
		// Given: the initial board
		board := entity.InitialState()

		// When: X plays a corner
		result, err := newUseCase().PlayTurn(ctx, board, entity.Action{Row: 0, Col: 0})

		// Then: O should reply and the game should go on
		require.NoError(t, err)
		require.NotNil(t, result.BotAction)
		assert.Equal(t, entity.MarkX, result.Board[0][0])
		assert.Equal(t, entity.MarkO, result.Board.At(*result.BotAction))
		assert.Equal(t, 7, result.Board.Count(entity.Empty))
		assert.Equal(t, entity.StatusOngoing, result.Status)
	})

	t.Run("Bot blocks the caller", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			{x, e, e},
			{e, o, e},
			{e, e, e},
		}

		// When: X plays (0,1)
		result, err := newUseCase().PlayTurn(ctx, board, entity.Action{Row: 0, Col: 1})

		// Then: O should block at (0,2)
		require.NoError(t, err)
		require.NotNil(t, result.BotAction)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, *result.BotAction)
	})

	t.Run("Winning action ends the game without a bot reply", func(t *testing.T) {
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		result, err := newUseCase().PlayTurn(ctx, board, entity.Action{Row: 0, Col: 2})

		require.NoError(t, err)
		assert.Nil(t, result.BotAction)
		assert.Equal(t, entity.MarkX, result.Winner)
		assert.Equal(t, entity.StatusFinished, result.Status)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		board := entity.Board{
			{x, e, e},
			{e, e, e},
			{e, e, e},
		}

		_, err := newUseCase().PlayTurn(ctx, board, entity.Action{Row: 0, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrInvalidAction)
	})

	t.Run("Error on out of range action", func(t *testing.T) {
		_, err := newUseCase().PlayTurn(ctx, entity.InitialState(), entity.Action{Row: 3, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrInvalidAction)
	})

	t.Run("Error when the game is over", func(t *testing.T) {
		board := entity.Board{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}

		_, err := newUseCase().PlayTurn(ctx, board, entity.Action{Row: 0, Col: 0})

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error when the bot fails", func(t *testing.T) {
		// Given: a bot that cannot move
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		bot := &mockBotService{}
		bot.On("MakeTurn", mock.Anything, mock.AnythingOfType("entity.Board")).
			Return(entity.Board{}, entity.Action{}, errSomeError).
			Once()

		useCase := NewGameUseCase(logger, service.NewSolverService(logger, minimax.NewSolver(), nil), bot)

		// When: playing a turn
		result, err := useCase.PlayTurn(ctx, entity.InitialState(), entity.Action{Row: 1, Col: 1})

		// Then: the bot error should be returned
		require.ErrorIs(t, err, errSomeError)
		assert.Nil(t, result)
		bot.AssertExpectations(t)
	})
}

func TestGameUseCase_SelfPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("Optimal play from the initial board is a draw", func(t *testing.T) {
		// When: the bot plays both sides from the start
		playout, err := newUseCase().SelfPlay(ctx, entity.InitialState())

		// Then: the board should fill up with no winner
		require.NoError(t, err)
		assert.Len(t, playout.Actions, 9)
		assert.Equal(t, entity.Empty, playout.Winner)
		assert.Equal(t, 0, playout.Utility)
		assert.Equal(t, 0, playout.Final.Count(entity.Empty))
	})

	t.Run("Forced win is converted", func(t *testing.T) {
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		playout, err := newUseCase().SelfPlay(ctx, board)

		require.NoError(t, err)
		assert.Equal(t, []entity.Action{{Row: 0, Col: 2}}, playout.Actions)
		assert.Equal(t, entity.MarkX, playout.Winner)
		assert.Equal(t, 1, playout.Utility)
	})

	t.Run("Terminal start has no actions", func(t *testing.T) {
		board := entity.Board{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}

		playout, err := newUseCase().SelfPlay(ctx, board)

		require.NoError(t, err)
		assert.Empty(t, playout.Actions)
		assert.Equal(t, board, playout.Final)
	})
}
