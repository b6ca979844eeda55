package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrBoardRequired = errors.New("board is required")

type boardRequest struct {
	Board *tictactoe.Board `json:"board"`
}

type turnRequest struct {
	Board  *tictactoe.Board  `json:"board"`
	Action *tictactoe.Action `json:"action"`
}

type boardResponse struct {
	Board tictactoe.Board `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleInitial(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, boardResponse{Board: tictactoe.InitialState()})
}

func (that *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeRequest(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	if req.Board == nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, ErrBoardRequired))
		return
	}

	analysis, err := that.solver.Analyze(r.Context(), *req.Board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeRequest(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	if req.Board == nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, ErrBoardRequired))
		return
	}

	if req.Action == nil {
		that.writeError(w, r, fmt.Errorf("%w: action is required", apperror.ErrInvalidCell))
		return
	}

	turn, err := that.solver.PlayTurn(r.Context(), *req.Board, *req.Action)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, turn)
}

func decodeRequest(r *http.Request, req any) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if err == nil || errors.Is(err, apperror.ErrInvalidBoard) {
		return err
	}

	return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidBoard), errors.Is(err, apperror.ErrInvalidCell):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrGameFinished):
		status = http.StatusConflict
	}

	log := that.logger.With().Str("method", "writeError").Str("path", r.URL.Path).Logger()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Msg("request rejected")
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error().Err(err).Str("method", "writeJSON").Msg("failed to write response")
	}
}
