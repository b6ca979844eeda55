package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const size = 3

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X":
		*that = MarkX
	case "O":
		*that = MarkO
	default:
		return fmt.Errorf("%w: unknown cell %q", apperror.ErrInvalidBoard, text)
	}

	return nil
}

// Player is the side that owns a mark.
type Player uint8

const (
	X Player = iota + 1
	O
)

func (that Player) Mark() Cell {
	switch that {
	case X:
		return MarkX
	case O:
		return MarkO
	default:
		return Empty
	}
}

func (that Player) Opponent() Player {
	if that == X {
		return O
	}
	return X
}

func (that Player) String() string {
	return that.Mark().String()
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "X":
		*that = X
	case "O":
		*that = O
	default:
		return fmt.Errorf("%w: unknown player %q", apperror.ErrInvalidBoard, text)
	}

	return nil
}

// Action addresses one square by zero-based row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) Valid() bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a 3x3 grid. It is a value type: every copy is independent,
// so operations that produce a new position never touch the caller's board.
type Board [size][size]Cell

// InitialState returns the all-empty board.
func InitialState() Board {
	return Board{}
}

// ParseBoard reads the compact form produced by Board.String. Whitespace and
// '/' row separators are skipped; '.', '-' and '_' denote an empty square.
func ParseBoard(s string) (Board, error) {
	var board Board

	i := 0
	for _, r := range s {
		var cell Cell

		switch r {
		case ' ', '\t', '\n', '/':
			continue
		case '.', '-', '_':
			cell = Empty
		case 'X', 'x':
			cell = MarkX
		case 'O', 'o':
			cell = MarkO
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, r)
		}

		if i >= size*size {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, size*size)
		}

		board[i/size][i%size] = cell
		i++
	}

	if i != size*size {
		return Board{}, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, size*size, i)
	}

	return board, nil
}

// MustParseBoard is ParseBoard for literals known to be well formed.
func MustParseBoard(s string) Board {
	board, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return board
}

// String renders the board row-major with '.' for empty squares.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(size * size)

	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// Count returns the number of filled squares.
func (that Board) Count() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// UnmarshalJSON decodes a board from three rows of three cells. Missing or
// extra rows and cells are rejected instead of being zero-filled or dropped.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		if errors.Is(err, apperror.ErrInvalidBoard) {
			return err
		}
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != size {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, size, len(rows))
	}

	var board Board
	for row, cells := range rows {
		if len(cells) != size {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrInvalidBoard, row, len(cells), size)
		}
		copy(board[row][:], cells)
	}

	*that = board
	return nil
}

// Validate reports whether the board could have been reached by alternating
// play starting with X and stopping once a line is complete.
func (that Board) Validate() error {
	var xCount, oCount int
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case Empty:
			case MarkX:
				xCount++
			case MarkO:
				oCount++
			default:
				return fmt.Errorf("%w: unknown cell value %d", apperror.ErrInvalidBoard, cell)
			}
		}
	}

	if oCount != xCount && oCount != xCount-1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	xLine, oLine := that.hasLine(MarkX), that.hasLine(MarkO)
	if xLine && oLine {
		return fmt.Errorf("%w: both players have a complete line", apperror.ErrInvalidBoard)
	}

	// The winner made the last move.
	if xLine && xCount != oCount+1 {
		return fmt.Errorf("%w: O moved after X completed a line", apperror.ErrInvalidBoard)
	}
	if oLine && xCount != oCount {
		return fmt.Errorf("%w: X moved after O completed a line", apperror.ErrInvalidBoard)
	}

	return nil
}
