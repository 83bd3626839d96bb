package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// WinCombos lists every line of three: rows, then columns, then both diagonals.
var WinCombos = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// ActivePlayer - returns the mark that moves next. X moves whenever the counts are equal.
func ActivePlayer(board entity.Board) entity.Mark {
	if board.Count(entity.MarkX) > board.Count(entity.MarkO) {
		return entity.MarkO
	}
	return entity.MarkX
}

// LegalActions - returns every empty cell in row-major order.
func LegalActions(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, entity.BoardSize*entity.BoardSize)
	for row := range board {
		for col, cell := range board[row] {
			if cell == entity.Empty {
				actions = append(actions, entity.Action{Row: row, Col: col})
			}
		}
	}
	return actions
}

// Transition - returns the board produced by the active player taking action. The input board is left as is.
func Transition(board entity.Board, action entity.Action) (entity.Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: %s is out of range", apperror.ErrInvalidAction, action)
	}

	if board.At(action) != entity.Empty {
		return board, fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidAction, action)
	}

	next := board.DeepCopy()
	next[action.Row][action.Col] = ActivePlayer(board)

	return next, nil
}

// Winner - returns the mark owning a complete line, if any.
func Winner(board entity.Board) (entity.Mark, bool) {
	for _, combo := range WinCombos {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if a != entity.Empty && a == b && b == c {
			return a, true
		}
	}
	return entity.Empty, false
}

// IsTerminal - reports whether the game is over: someone has won or no cell is left.
func IsTerminal(board entity.Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}
	return board.Count(entity.Empty) == 0
}

// Utility - scores a terminal board: 1 when X has won, -1 when O has won, 0 otherwise.
func Utility(board entity.Board) int {
	winner, _ := Winner(board)

	switch winner {
	case entity.MarkX:
		return 1
	case entity.MarkO:
		return -1
	default:
		return 0
	}
}

// Validate - checks that a board could have arisen from alternating play starting with X.
func Validate(board entity.Board) error {
	xCount, oCount := board.Count(entity.MarkX), board.Count(entity.MarkO)
	if diff := xCount - oCount; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrMalformedBoard, xCount, oCount)
	}

	xWins, oWins := false, false
	for _, combo := range WinCombos {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if a == entity.Empty || a != b || b != c {
			continue
		}

		if a == entity.MarkX {
			xWins = true
		} else {
			oWins = true
		}
	}

	if xWins && oWins {
		return fmt.Errorf("%w: both players own a complete line", apperror.ErrMalformedBoard)
	}

	// only the player who moved last can own a line
	lastMover := ActivePlayer(board).Opponent()
	if (xWins && lastMover != entity.MarkX) || (oWins && lastMover != entity.MarkO) {
		return fmt.Errorf("%w: %s moved after the game was won", apperror.ErrMalformedBoard, ActivePlayer(board))
	}

	return nil
}
