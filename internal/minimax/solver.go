package minimax

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// Result is the outcome of a single root search.
type Result struct {
	Action entity.Action
	// Found is false when the board was already terminal.
	Found bool
	Value int
	Nodes int64
}

type Option func(*Solver)

// WithParallel - evaluates every root action on its own goroutine.
func WithParallel(parallel bool) Option {
	return func(s *Solver) {
		s.parallel = parallel
	}
}

// Solver runs root searches and reports how many nodes they visited. It is safe for concurrent use.
type Solver struct {
	parallel bool
}

func NewSolver(opts ...Option) *Solver {
	solver := &Solver{}
	for _, opt := range opts {
		opt(solver)
	}
	return solver
}

func (that *Solver) Parallel() bool {
	return that.parallel
}

// Solve - finds the optimal action for the active player on board.
func (that *Solver) Solve(ctx context.Context, board entity.Board) (Result, error) {
	if that.parallel {
		return that.solveParallel(ctx, board)
	}

	var nodes atomic.Int64
	action, value, found := newSearch(func() { nodes.Add(1) }).root(board)

	return Result{
		Action: action,
		Found:  found,
		Value:  value,
		Nodes:  nodes.Load(),
	}, nil
}

// solveParallel gives every root action its own board copy and a full window,
// then picks the first best value in enumeration order like the sequential search does.
func (that *Solver) solveParallel(ctx context.Context, board entity.Board) (Result, error) {
	var nodes atomic.Int64
	nodes.Add(1)

	if tictactoe.IsTerminal(board) {
		return Result{Value: tictactoe.Utility(board), Nodes: nodes.Load()}, nil
	}

	maximizing := tictactoe.ActivePlayer(board) == entity.MarkX
	actions := tictactoe.LegalActions(board)
	values := make([]int, len(actions))

	group, ctx := errgroup.WithContext(ctx)
	for i, action := range actions {
		i, action := i, action
		child := board.DeepCopy()

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("search canceled: %w", err)
			}

			next, err := tictactoe.Transition(child, action)
			if err != nil {
				return fmt.Errorf("failed to apply root action %s: %w", action, err)
			}

			branch := newSearch(func() { nodes.Add(1) })
			if maximizing {
				values[i] = branch.minValue(next, NegInfinity, PosInfinity)
			} else {
				values[i] = branch.maxValue(next, NegInfinity, PosInfinity)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if (maximizing && values[i] > values[best]) || (!maximizing && values[i] < values[best]) {
			best = i
		}
	}

	return Result{
		Action: actions[best],
		Found:  true,
		Value:  values[best],
		Nodes:  nodes.Load(),
	}, nil
}
