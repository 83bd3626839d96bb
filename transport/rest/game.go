package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const maxBodyBytes = 1 << 12

var ErrBadRequest = errors.New("bad request")

type gameUseCase interface {
	Evaluate(ctx context.Context, board entity.Board) (*entity.Position, error)
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
	PlayTurn(ctx context.Context, board entity.Board, action entity.Action) (*entity.TurnResult, error)
	SelfPlay(ctx context.Context, board entity.Board) (*entity.Playout, error)
}

type GameHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	Solve(w http.ResponseWriter, r *http.Request)
	PlayTurn(w http.ResponseWriter, r *http.Request)
	SelfPlay(w http.ResponseWriter, r *http.Request)
}

type boardRequest struct {
	Board *entity.Board `json:"board"`
}

type turnRequest struct {
	Board  *entity.Board  `json:"board"`
	Action *entity.Action `json:"action"`
}

var errBoardRequired = fmt.Errorf("%w: board is required", ErrBadRequest)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type gameHandler struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewGameHandler(logger *slog.Logger, gameUseCase gameUseCase) GameHandler {
	return &gameHandler{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *gameHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.sendError(w, r, "Evaluate", err)
		return
	}

	if req.Board == nil {
		that.sendError(w, r, "Evaluate", errBoardRequired)
		return
	}

	position, err := that.gameUseCase.Evaluate(r.Context(), *req.Board)
	if err != nil {
		that.sendError(w, r, "Evaluate", err)
		return
	}

	that.sendJSON(w, http.StatusOK, position)
}

func (that *gameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.sendError(w, r, "Solve", err)
		return
	}

	if req.Board == nil {
		that.sendError(w, r, "Solve", errBoardRequired)
		return
	}

	solution, err := that.gameUseCase.Solve(r.Context(), *req.Board)
	if err != nil {
		that.sendError(w, r, "Solve", err)
		return
	}

	that.sendJSON(w, http.StatusOK, solution)
}

func (that *gameHandler) PlayTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.sendError(w, r, "PlayTurn", err)
		return
	}

	if req.Board == nil {
		that.sendError(w, r, "PlayTurn", errBoardRequired)
		return
	}

	if req.Action == nil {
		that.sendError(w, r, "PlayTurn", fmt.Errorf("%w: action is required", ErrBadRequest))
		return
	}

	result, err := that.gameUseCase.PlayTurn(r.Context(), *req.Board, *req.Action)
	if err != nil {
		that.sendError(w, r, "PlayTurn", err)
		return
	}

	that.sendJSON(w, http.StatusOK, result)
}

func (that *gameHandler) SelfPlay(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.sendError(w, r, "SelfPlay", err)
		return
	}

	if req.Board == nil {
		that.sendError(w, r, "SelfPlay", errBoardRequired)
		return
	}

	playout, err := that.gameUseCase.SelfPlay(r.Context(), *req.Board)
	if err != nil {
		that.sendError(w, r, "SelfPlay", err)
		return
	}

	that.sendJSON(w, http.StatusOK, playout)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidAction), errors.Is(err, apperror.ErrMalformedBoard):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *gameHandler) sendError(w http.ResponseWriter, r *http.Request, method string, err error) {
	status := statusFor(err)
	log := that.logger.With("method", method, "request_id", requestIDFrom(r.Context()))

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		message = http.StatusText(status)
	} else {
		log.Info("request rejected", "status", status, "error", err)
	}

	that.sendJSON(w, status, errorResponse{
		Error:     message,
		RequestID: requestIDFrom(r.Context()),
	})
}

func (that *gameHandler) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
