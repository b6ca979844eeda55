package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockAnalysisRepo struct {
	mock.Mock
}

func (m *mockAnalysisRepo) Set(ctx context.Context, analysis *entity.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *mockAnalysisRepo) Get(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error) {
	args := m.Called(ctx, board)

	analysis, _ := args.Get(0).(*entity.Analysis)
	return analysis, args.Error(1)
}

func (m *mockAnalysisRepo) Delete(ctx context.Context, board tictactoe.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

type mockBotService struct {
	mock.Mock
}

func (m *mockBotService) ChooseAction(board tictactoe.Board) (tictactoe.Action, error) {
	args := m.Called(board)
	return args.Get(0).(tictactoe.Action), args.Error(1)
}

func newHardBot(t *testing.T) service.BotService {
	t.Helper()

	bot, err := service.NewBotService(service.DifficultyHard, false)
	require.NoError(t, err)

	return bot
}

func TestSolver_Analyze(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("Computes and caches on a miss", func(t *testing.T) {
		// Given: an empty cache
		board := tictactoe.MustParseBoard("XX./.O./...")

		repo := &mockAnalysisRepo{}
		repo.On("Get", ctx, board).Return(nil, repository.ErrAnalysisNotFound).Once()
		repo.On("Set", ctx, mock.AnythingOfType("*entity.Analysis")).Return(nil).Once()

		solver := NewSolver(logger, repo, newHardBot(t), false)

		// When: analysing the board
		analysis, err := solver.Analyze(ctx, board)

		// Then: the engine result is returned and stored
		require.NoError(t, err)
		assert.Equal(t, board, analysis.Board)
		assert.Equal(t, &tictactoe.Action{Row: 0, Col: 2}, analysis.BestMove)
		assert.Equal(t, entity.StatusOngoing, analysis.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Serves a cache hit without searching", func(t *testing.T) {
		// Given: a cached analysis for the board
		board := tictactoe.InitialState()
		cached := &entity.Analysis{Board: board, Status: entity.StatusOngoing, Value: 0}

		repo := &mockAnalysisRepo{}
		repo.On("Get", ctx, board).Return(cached, nil).Once()

		solver := NewSolver(logger, repo, newHardBot(t), false)

		// When: analysing the board
		analysis, err := solver.Analyze(ctx, board)

		// Then: the cached value is returned and nothing is written
		require.NoError(t, err)
		assert.Same(t, cached, analysis)
		repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("Cache failures do not fail the request", func(t *testing.T) {
		// Given: a cache that errors on every call
		board := tictactoe.MustParseBoard("XXX/OO./...")

		repo := &mockAnalysisRepo{}
		repo.On("Get", ctx, board).Return(nil, errRedisDown).Once()
		repo.On("Set", ctx, mock.AnythingOfType("*entity.Analysis")).Return(errRedisDown).Once()

		solver := NewSolver(logger, repo, newHardBot(t), false)

		// When: analysing the board
		analysis, err := solver.Analyze(ctx, board)

		// Then: the analysis is still returned
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, analysis.Status)
		assert.Equal(t, entity.PlayerX, analysis.Winner)
		assert.Nil(t, analysis.BestMove)
		repo.AssertExpectations(t)
	})

	t.Run("Evicts a corrupted cache entry", func(t *testing.T) {
		// Given: a cache entry that no longer decodes
		board := tictactoe.MustParseBoard("XX./OO./...")

		repo := &mockAnalysisRepo{}
		repo.On("Get", ctx, board).Return(nil, repository.ErrAnalysisCorrupted).Once()
		repo.On("Delete", ctx, board).Return(nil).Once()
		repo.On("Set", ctx, mock.AnythingOfType("*entity.Analysis")).Return(nil).Once()

		solver := NewSolver(logger, repo, newHardBot(t), false)

		// When: analysing the board
		analysis, err := solver.Analyze(ctx, board)

		// Then: the entry is deleted and replaced by a fresh analysis
		require.NoError(t, err)
		assert.Equal(t, &tictactoe.Action{Row: 0, Col: 2}, analysis.BestMove)
		repo.AssertExpectations(t)
	})

	t.Run("Works without a cache", func(t *testing.T) {
		solver := NewSolver(logger, nil, newHardBot(t), true)

		analysis, err := solver.Analyze(ctx, tictactoe.MustParseBoard("XX./OO./..."))

		require.NoError(t, err)
		assert.Equal(t, 1, analysis.Value)
		assert.Equal(t, &tictactoe.Action{Row: 0, Col: 2}, analysis.BestMove)
	})

	t.Run("Error on invalid board", func(t *testing.T) {
		solver := NewSolver(logger, nil, newHardBot(t), false)

		_, err := solver.Analyze(ctx, tictactoe.MustParseBoard("OO......."))

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestSolver_PlayTurn(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("Bot answers the player move", func(t *testing.T) {
		// Given: a bot that will answer in the centre
		board := tictactoe.InitialState()
		afterPlayer := tictactoe.MustParseBoard("X../.../...")

		bot := &mockBotService{}
		bot.On("ChooseAction", afterPlayer).Return(tictactoe.Action{Row: 1, Col: 1}, nil).Once()

		solver := NewSolver(logger, nil, bot, false)

		// When: X plays the corner
		turn, err := solver.PlayTurn(ctx, board, tictactoe.Action{Row: 0, Col: 0})

		// Then: both moves are on the board and X is to move again
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MustParseBoard("X../.O./..."), turn.Board)
		assert.Equal(t, entity.StatusOngoing, turn.Status)
		assert.Equal(t, entity.PlayerX, turn.Turn)
		require.NotNil(t, turn.BotAction)
		assert.Equal(t, tictactoe.Action{Row: 1, Col: 1}, *turn.BotAction)
		bot.AssertExpectations(t)
	})

	t.Run("Winning move skips the bot", func(t *testing.T) {
		// Given: X can complete the top row
		bot := &mockBotService{}
		solver := NewSolver(logger, nil, bot, false)

		// When: X plays the winning square
		turn, err := solver.PlayTurn(ctx, tictactoe.MustParseBoard("XX./OO./..."), tictactoe.Action{Row: 0, Col: 2})

		// Then: the game is over and the bot never moved
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, turn.Status)
		assert.Equal(t, entity.PlayerX, turn.Winner)
		assert.Nil(t, turn.BotAction)
		bot.AssertNotCalled(t, "ChooseAction", mock.Anything)
	})

	t.Run("Hard bot wins when given the chance", func(t *testing.T) {
		// Given: O threatens the middle row
		solver := NewSolver(logger, nil, newHardBot(t), false)
		board := tictactoe.MustParseBoard("XX./OO./X..")

		// When: X ignores the threat and plays the top row
		turn, err := solver.PlayTurn(ctx, tictactoe.MustParseBoard("X../OO./X.."), tictactoe.Action{Row: 0, Col: 1})

		// Then: the bot completes the middle row
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, turn.Status)
		assert.Equal(t, entity.PlayerO, turn.Winner)
		next, err := board.Result(*turn.BotAction)
		require.NoError(t, err)
		assert.Equal(t, -1, next.Utility())
	})

	t.Run("Error on cell already filled", func(t *testing.T) {
		solver := NewSolver(logger, nil, &mockBotService{}, false)

		_, err := solver.PlayTurn(ctx, tictactoe.MustParseBoard("X../.O./..."), tictactoe.Action{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		solver := NewSolver(logger, nil, &mockBotService{}, false)

		_, err := solver.PlayTurn(ctx, tictactoe.MustParseBoard("XXX/OO./..."), tictactoe.Action{Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error when the bot fails", func(t *testing.T) {
		bot := &mockBotService{}
		bot.On("ChooseAction", mock.Anything).Return(tictactoe.Action{}, service.ErrNoAvailableMoves).Once()

		solver := NewSolver(logger, nil, bot, false)

		_, err := solver.PlayTurn(ctx, tictactoe.InitialState(), tictactoe.Action{Row: 0, Col: 0})

		require.ErrorIs(t, err, service.ErrNoAvailableMoves)
	})
}
