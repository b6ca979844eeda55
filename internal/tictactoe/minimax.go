package tictactoe

import "math"

// Minimax returns the optimal action for the side to move, or false when the
// board is terminal. X maximizes the utility, O minimizes it. Among equally
// good actions the first one in Actions order is chosen.
func Minimax(board Board) (Action, bool) {
	if board.Terminal() {
		return Action{}, false
	}

	actions := board.Actions()
	values := evaluate(board, actions)

	return pick(board.Player(), actions, values), true
}

// Value returns the score of board under perfect play from both sides.
func Value(board Board) int {
	if board.Player() == X {
		return maxValue(board)
	}
	return minValue(board)
}

func maxValue(board Board) int {
	if board.Terminal() {
		return board.Utility()
	}

	v := math.MinInt
	for _, action := range board.Actions() {
		v = max(v, minValue(board.place(action)))
	}
	return v
}

func minValue(board Board) int {
	if board.Terminal() {
		return board.Utility()
	}

	v := math.MaxInt
	for _, action := range board.Actions() {
		v = min(v, maxValue(board.place(action)))
	}
	return v
}

func evaluate(board Board, actions []Action) []int {
	values := make([]int, len(actions))
	for i, action := range actions {
		values[i] = childValue(board, action)
	}
	return values
}

// childValue scores the position reached by action, with the opponent to move.
func childValue(board Board, action Action) int {
	next := board.place(action)
	if board.Player() == X {
		return minValue(next)
	}
	return maxValue(next)
}

// pick folds values in order and keeps the first strict improvement.
func pick(player Player, actions []Action, values []int) Action {
	best := 0
	for i := 1; i < len(actions); i++ {
		if player == X && values[i] > values[best] || player == O && values[i] < values[best] {
			best = i
		}
	}
	return actions[best]
}
