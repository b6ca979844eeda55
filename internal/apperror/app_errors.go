package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("cell already filled")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidBoard = errors.New("invalid board")
	ErrGameFinished = errors.New("game is already finished")
)
