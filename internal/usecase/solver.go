package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type analysisRepo interface {
	Set(ctx context.Context, analysis *entity.Analysis) error
	Get(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error)
	Delete(ctx context.Context, board tictactoe.Board) error
}

type botService interface {
	ChooseAction(board tictactoe.Board) (tictactoe.Action, error)
}

type Solver struct {
	logger zerolog.Logger

	analysisRepo analysisRepo
	botService   botService
	parallel     bool
}

// NewSolver wires the engine to a bot and an optional analysis cache.
// analysisRepo may be nil, in which case every request is searched.
func NewSolver(logger zerolog.Logger, analysisRepo analysisRepo, botService botService, parallel bool) *Solver {
	return &Solver{
		logger: logger.With().Str("component", "solver").Logger(),

		analysisRepo: analysisRepo,
		botService:   botService,
		parallel:     parallel,
	}
}

// Analyze returns the perfect-play evaluation of board.
func (that *Solver) Analyze(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error) {
	log := that.logger.With().Str("method", "Analyze").Str("board", board.String()).Logger()

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if cached := that.getCached(ctx, board); cached != nil {
		log.Debug().Msg("analysis served from cache")
		return cached, nil
	}

	analysis := entity.NewAnalysis(tictactoe.Analyze(board, that.parallel))

	if that.analysisRepo != nil {
		if err := that.analysisRepo.Set(ctx, analysis); err != nil {
			log.Error().Err(err).Msg("failed to cache analysis")
		}
	}

	log.Info().Str("status", analysis.Status).Int("value", analysis.Value).Msg("board analysed")

	return analysis, nil
}

// PlayTurn applies the caller's action to board and, unless that ends the
// game, lets the bot answer.
func (that *Solver) PlayTurn(ctx context.Context, board tictactoe.Board, action tictactoe.Action) (*entity.Turn, error) {
	log := that.logger.With().Str("method", "PlayTurn").Str("board", board.String()).Logger()

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if board.Terminal() {
		return nil, apperror.ErrGameFinished
	}

	next, err := board.Result(action)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if next.Terminal() {
		turn := entity.NewTurn(next, action, nil)
		log.Info().Str("winner", turn.Winner).Msg("game finished by player")

		return turn, nil
	}

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("turn canceled: %w", err)
	}

	botAction, err := that.botService.ChooseAction(next)
	if err != nil {
		return nil, fmt.Errorf("bot failed to choose action: %w", err)
	}

	next, err = next.Result(botAction)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	turn := entity.NewTurn(next, action, &botAction)
	log.Info().Stringer("bot_action", botAction).Str("status", turn.Status).Msg("bot made a turn")

	return turn, nil
}

func (that *Solver) getCached(ctx context.Context, board tictactoe.Board) *entity.Analysis {
	if that.analysisRepo == nil {
		return nil
	}

	log := that.logger.With().Str("method", "getCached").Str("board", board.String()).Logger()

	cached, err := that.analysisRepo.Get(ctx, board)
	if errors.Is(err, repository.ErrAnalysisNotFound) {
		return nil
	}

	if errors.Is(err, repository.ErrAnalysisCorrupted) {
		log.Warn().Err(err).Msg("evicting corrupted analysis")

		if err = that.analysisRepo.Delete(ctx, board); err != nil && !errors.Is(err, repository.ErrAnalysisNotFound) {
			log.Error().Err(err).Msg("failed to evict analysis")
		}
		return nil
	}

	if err != nil {
		log.Warn().Err(err).Msg("failed to read analysis cache")
		return nil
	}

	return cached
}
