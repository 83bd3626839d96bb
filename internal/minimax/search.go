// Package minimax finds optimal Tic-Tac-Toe actions with minimax search and alpha-beta pruning.
// The tree is always searched to terminal boards, so the returned values are exact game values.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	NegInfinity = math.MinInt
	PosInfinity = math.MaxInt
)

// OptimalAction - returns the best action for the active player, or false when the board is terminal.
// Among equally good actions the first one in enumeration order is chosen.
func OptimalAction(board entity.Board) (entity.Action, bool) {
	action, _, ok := newSearch(nil).root(board)
	return action, ok
}

// MaxValue - returns the value of board for X to move, searching within the (alpha, beta) window.
func MaxValue(board entity.Board, alpha, beta int) int {
	return newSearch(nil).maxValue(board, alpha, beta)
}

// MinValue - returns the value of board for O to move, searching within the (alpha, beta) window.
func MinValue(board entity.Board, alpha, beta int) int {
	return newSearch(nil).minValue(board, alpha, beta)
}

// Value - returns the game-theoretic value of board under optimal play from both sides.
func Value(board entity.Board) int {
	return newSearch(nil).value(board, NegInfinity, PosInfinity)
}

type search struct {
	visit func()
}

func newSearch(visit func()) *search {
	if visit == nil {
		visit = func() {}
	}
	return &search{visit: visit}
}

func (that *search) root(board entity.Board) (entity.Action, int, bool) {
	that.visit()

	if tictactoe.IsTerminal(board) {
		return entity.Action{}, tictactoe.Utility(board), false
	}

	maximizing := tictactoe.ActivePlayer(board) == entity.MarkX
	alpha, beta := NegInfinity, PosInfinity

	best := PosInfinity
	if maximizing {
		best = NegInfinity
	}

	var move entity.Action
	found := false

	for _, action := range tictactoe.LegalActions(board) {
		next := that.apply(board, action)

		if maximizing {
			value := that.minValue(next, alpha, beta)
			alpha = max(alpha, value)
			if !found || value > best {
				best, move, found = value, action, true
			}
			continue
		}

		value := that.maxValue(next, alpha, beta)
		beta = min(beta, value)
		if !found || value < best {
			best, move, found = value, action, true
		}
	}

	return move, best, true
}

func (that *search) value(board entity.Board, alpha, beta int) int {
	if tictactoe.ActivePlayer(board) == entity.MarkX {
		return that.maxValue(board, alpha, beta)
	}
	return that.minValue(board, alpha, beta)
}

func (that *search) maxValue(board entity.Board, alpha, beta int) int {
	that.visit()

	if tictactoe.IsTerminal(board) {
		return tictactoe.Utility(board)
	}

	best := NegInfinity
	for _, action := range tictactoe.LegalActions(board) {
		best = max(best, that.minValue(that.apply(board, action), alpha, beta))
		alpha = max(alpha, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

func (that *search) minValue(board entity.Board, alpha, beta int) int {
	that.visit()

	if tictactoe.IsTerminal(board) {
		return tictactoe.Utility(board)
	}

	best := PosInfinity
	for _, action := range tictactoe.LegalActions(board) {
		best = min(best, that.maxValue(that.apply(board, action), alpha, beta))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// apply panics on failure: actions come from LegalActions, so an error here is a bug.
func (that *search) apply(board entity.Board, action entity.Action) entity.Board {
	next, err := tictactoe.Transition(board, action)
	if err != nil {
		panic(fmt.Errorf("search produced an illegal action: %w", err))
	}
	return next
}
