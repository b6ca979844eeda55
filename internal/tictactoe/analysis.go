package tictactoe

// ScoredAction pairs a legal action with the perfect-play value of the
// position it leads to.
type ScoredAction struct {
	Action Action `json:"action"`
	Value  int    `json:"value"`
}

// Analysis is everything the engine knows about a single position.
type Analysis struct {
	Board    Board
	Player   Player
	Terminal bool
	Winner   *Player
	Utility  int

	// BestMove is nil on terminal boards.
	BestMove *Action
	Value    int
	Scores   []ScoredAction
}

// Analyze searches every legal action of board. With parallel set the root
// actions are searched concurrently; the result is the same either way.
func Analyze(board Board, parallel bool) Analysis {
	analysis := Analysis{
		Board:    board,
		Player:   board.Player(),
		Terminal: board.Terminal(),
		Utility:  board.Utility(),
	}

	if winner, ok := board.Winner(); ok {
		analysis.Winner = &winner
	}

	if analysis.Terminal {
		analysis.Value = analysis.Utility
		return analysis
	}

	actions := board.Actions()

	evaluator := evaluate
	if parallel {
		evaluator = evaluateParallel
	}
	values := evaluator(board, actions)

	analysis.Scores = make([]ScoredAction, len(actions))
	for i := range actions {
		analysis.Scores[i] = ScoredAction{Action: actions[i], Value: values[i]}
	}

	best := pick(analysis.Player, actions, values)
	analysis.BestMove = &best

	for _, scored := range analysis.Scores {
		if scored.Action == best {
			analysis.Value = scored.Value
			break
		}
	}

	return analysis
}

// Optimal returns every action whose value matches the best one.
func (that Analysis) Optimal() []Action {
	optimal := make([]Action, 0, len(that.Scores))
	for _, scored := range that.Scores {
		if scored.Value == that.Value {
			optimal = append(optimal, scored.Action)
		}
	}
	return optimal
}
