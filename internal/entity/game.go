package entity

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

// Analysis is the perfect-play evaluation of a single position.
type Analysis struct {
	Board    tictactoe.Board          `json:"board"`
	Status   string                   `json:"status"`
	Turn     string                   `json:"player_turn,omitempty"`
	Winner   string                   `json:"winner"`
	Utility  int                      `json:"utility"`
	BestMove *tictactoe.Action        `json:"best_move,omitempty"`
	Value    int                      `json:"value"`
	Scores   []tictactoe.ScoredAction `json:"scores,omitempty"`
}

// Turn is the outcome of a player move followed by the bot reply.
type Turn struct {
	Board        tictactoe.Board   `json:"board"`
	Status       string            `json:"status"`
	Turn         string            `json:"player_turn,omitempty"`
	Winner       string            `json:"winner"`
	PlayerAction tictactoe.Action  `json:"player_action"`
	BotAction    *tictactoe.Action `json:"bot_action,omitempty"`
}

func NewAnalysis(analysis tictactoe.Analysis) *Analysis {
	status, turn, winner := DetermineGameResult(analysis.Board)

	return &Analysis{
		Board:    analysis.Board,
		Status:   status,
		Turn:     turn,
		Winner:   winner,
		Utility:  analysis.Utility,
		BestMove: analysis.BestMove,
		Value:    analysis.Value,
		Scores:   analysis.Scores,
	}
}

func NewTurn(board tictactoe.Board, playerAction tictactoe.Action, botAction *tictactoe.Action) *Turn {
	status, turn, winner := DetermineGameResult(board)

	return &Turn{
		Board:        board,
		Status:       status,
		Turn:         turn,
		Winner:       winner,
		PlayerAction: playerAction,
		BotAction:    botAction,
	}
}

// DetermineGameResult returns the status, the side to move and the winner of
// board. The side to move is empty once the game is finished; the winner is
// PlayerTie for a draw and empty while the game goes on.
func DetermineGameResult(board tictactoe.Board) (string, string, string) {
	// one player wins
	if winner, ok := board.Winner(); ok {
		return StatusFinished, "", winner.String()
	}

	// tie
	if board.Terminal() {
		return StatusFinished, "", PlayerTie
	}

	// game continue
	return StatusOngoing, board.Player().String(), ""
}

func (that *Analysis) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Turn) IsFinished() bool {
	return that.Status == StatusFinished
}
