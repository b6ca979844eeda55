package application

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	botService, err := service.NewBotService(conf.Bot.Difficulty, conf.Bot.Parallel)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	var solver *usecase.Solver

	if conf.Redis.Enabled {
		redisClient, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("could not close redis storage")
			}
		}()

		analysisRepo := repository.NewAnalysisRepository(redisClient, conf.Redis.TTL)
		solver = usecase.NewSolver(logger, analysisRepo, botService, conf.Bot.Parallel)

		log.Info().Str("addr", conf.Redis.GetRedisAddr()).Msg("analysis cache enabled")
	} else {
		solver = usecase.NewSolver(logger, nil, botService, conf.Bot.Parallel)
	}

	server := rest.New(logger, solver)

	log.Info().Str("port", conf.HTTPPort).Str("bot", conf.Bot.Difficulty).Msg("Starting HTTP server")

	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info().Msg("Application context canceled, shutting down")

	return nil
}
