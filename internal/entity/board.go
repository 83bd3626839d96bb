package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const BoardSize = 3

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	MarkX
	MarkO
)

var (
	ErrUnknownMark = errors.New("unknown mark")
	ErrBoardShape  = errors.New("board must have exactly 3 rows of 3 cells")
)

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	case "", "-", "_", ".":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (that Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: null", ErrUnknownMark)
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("mark must be a string: %w", err)
	}

	mark, err := ParseMark(raw)
	if err != nil {
		return err
	}

	*that = mark
	return nil
}

// Action identifies a cell by zero-based row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// InBounds - reports whether the action addresses a cell of the board.
func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is a 3x3 grid stored row-major. Boards are values: assigning one copies every cell.
type Board [BoardSize][BoardSize]Mark

// InitialState - returns the empty starting board.
func InitialState() Board {
	return Board{}
}

// DeepCopy - returns a board with the same cells that shares no storage with the receiver.
func (that Board) DeepCopy() Board {
	var board Board
	for row := range that {
		for col := range that[row] {
			board[row][col] = that[row][col]
		}
	}
	return board
}

func (that Board) At(action Action) Mark {
	return that[action.Row][action.Col]
}

// Count - returns the number of cells holding mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for row := range that {
		for _, cell := range that[row] {
			if cell == mark {
				count++
			}
		}
	}
	return count
}

// Key - returns a compact nine character encoding, e.g. "XX-OO----".
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for row := range that {
		for _, cell := range that[row] {
			if cell == Empty {
				sb.WriteByte('-')
				continue
			}
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

// Rows - returns one string per row, empty cells as '-'.
func (that Board) Rows() [BoardSize]string {
	var rows [BoardSize]string
	key := that.Key()
	for row := range rows {
		rows[row] = key[row*BoardSize : (row+1)*BoardSize]
	}
	return rows
}

func (that Board) String() string {
	rows := that.Rows()
	return strings.Join(rows[:], "/")
}

// UnmarshalJSON - accepts exactly three rows of three marks; null and any other shape are rejected.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: got %d rows", ErrBoardShape, len(rows))
	}

	var board Board
	for row, cells := range rows {
		if len(cells) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrBoardShape, row, len(cells))
		}
		copy(board[row][:], cells)
	}

	*that = board
	return nil
}
