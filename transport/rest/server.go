package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	handlerTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type solverUseCase interface {
	Analyze(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error)
	PlayTurn(ctx context.Context, board tictactoe.Board, action tictactoe.Action) (*entity.Turn, error)
}

type Server struct {
	logger zerolog.Logger
	router *chi.Mux

	solver solverUseCase
}

func New(logger zerolog.Logger, solver solverUseCase) *Server {
	server := &Server{
		logger: logger.With().Str("component", "rest").Logger(),
		router: chi.NewRouter(),

		solver: solver,
	}

	server.router.Use(middleware.RequestID)
	server.router.Use(middleware.RealIP)
	server.router.Use(hlog.NewHandler(server.logger))
	server.router.Use(hlog.AccessHandler(accessLog))
	server.router.Use(middleware.Recoverer)
	server.router.Use(middleware.Timeout(handlerTimeout))

	server.router.Get("/ping", pingHandler)
	server.router.Get("/initial", server.handleInitial)
	server.router.Post("/analyze", server.handleAnalyze)
	server.router.Post("/turn", server.handleTurn)

	return server
}

// Router exposes the handler for tests.
func (that *Server) Router() http.Handler {
	return that.router
}

// Start serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request handled")
}
