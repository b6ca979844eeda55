package tictactoe

import "sync"

// MinimaxParallel is Minimax with every root action searched on its own
// goroutine. Values are folded in Actions order once all branches finish, so
// it selects exactly the action Minimax would.
func MinimaxParallel(board Board) (Action, bool) {
	if board.Terminal() {
		return Action{}, false
	}

	actions := board.Actions()
	values := evaluateParallel(board, actions)

	return pick(board.Player(), actions, values), true
}

func evaluateParallel(board Board, actions []Action) []int {
	values := make([]int, len(actions))

	var wg sync.WaitGroup
	wg.Add(len(actions))

	for i, action := range actions {
		go func() {
			defer wg.Done()
			// each goroutine writes only its own slot
			values[i] = childValue(board, action)
		}()
	}

	wg.Wait()

	return values
}
