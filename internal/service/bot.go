package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	DifficultyEasy = "easy"
	DifficultyHard = "hard"
)

var (
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownDifficulty = errors.New("unknown bot difficulty")
)

type BotService interface {
	ChooseAction(board tictactoe.Board) (tictactoe.Action, error)
}

type botService struct {
	difficulty string
	parallel   bool

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService returns a bot that plays random legal moves on "easy" and
// minimax moves on "hard". With parallel set the hard bot searches root
// actions concurrently.
func NewBotService(difficulty string, parallel bool) (BotService, error) {
	switch difficulty {
	case DifficultyEasy, DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}

	return &botService{
		difficulty: difficulty,
		parallel:   parallel,
		rnd:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}, nil
}

func (that *botService) ChooseAction(board tictactoe.Board) (tictactoe.Action, error) {
	if board.Terminal() {
		return tictactoe.Action{}, ErrNoAvailableMoves
	}

	if that.difficulty == DifficultyEasy {
		availableCells := board.Actions()
		return availableCells[that.randomIndex(len(availableCells))], nil
	}

	search := tictactoe.Minimax
	if that.parallel {
		search = tictactoe.MinimaxParallel
	}

	action, ok := search(board)
	if !ok {
		return tictactoe.Action{}, ErrNoAvailableMoves
	}

	return action, nil
}

// randomIndex serialises access to rnd, which is not safe for concurrent use.
func (that *botService) randomIndex(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}
