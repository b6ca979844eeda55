package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// WinCombos lists every line in the order Winner checks them:
// rows top to bottom, columns left to right, main diagonal, anti-diagonal.
var WinCombos = [8][size]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Player returns the side to move. X moves whenever the number of filled
// squares is even.
func (that Board) Player() Player {
	if that.Count()%2 == 0 {
		return X
	}
	return O
}

// Actions returns every empty square in row-major order. It does not check
// whether the game is already decided.
func (that Board) Actions() []Action {
	actions := make([]Action, 0, size*size)

	for row := range size {
		for col := range size {
			if that[row][col] == Empty {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Result returns the board after the side to move plays action. The receiver
// is a copy, so the caller's board is never modified.
func (that Board) Result(action Action) (Board, error) {
	if !action.Valid() {
		return Board{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, action)
	}

	if that[action.Row][action.Col] != Empty {
		return Board{}, fmt.Errorf("%w: %s", apperror.ErrInvalidMove, action)
	}

	return that.place(action), nil
}

// place puts the mark of the side to move on an already validated square.
func (that Board) place(action Action) Board {
	that[action.Row][action.Col] = that.Player().Mark()
	return that
}

// Winner returns the owner of the first complete line, if any.
func (that Board) Winner() (Player, bool) {
	for _, combo := range WinCombos {
		a := that.at(combo[0])
		if a != Empty && a == that.at(combo[1]) && a == that.at(combo[2]) {
			return markOwner(a), true
		}
	}

	return 0, false
}

// Terminal reports whether the game is over: somebody won or the board is full.
func (that Board) Terminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.Count() == size*size
}

// Utility scores a finished game: 1 when X won, -1 when O won, 0 otherwise.
// Only meaningful on terminal boards; an undecided board also scores 0.
func (that Board) Utility() int {
	winner, ok := that.Winner()
	switch {
	case !ok:
		return 0
	case winner == X:
		return 1
	default:
		return -1
	}
}

func (that Board) at(action Action) Cell {
	return that[action.Row][action.Col]
}

func (that Board) hasLine(mark Cell) bool {
	for _, combo := range WinCombos {
		if that.at(combo[0]) == mark && that.at(combo[1]) == mark && that.at(combo[2]) == mark {
			return true
		}
	}
	return false
}

func markOwner(mark Cell) Player {
	if mark == MarkO {
		return O
	}
	return X
}
