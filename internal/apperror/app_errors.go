package apperror

import "errors"

var (
	ErrInvalidPlayers   = errors.New("invalid players")
	ErrIllegalState     = errors.New("illegal game state")
	ErrOutOfRange       = errors.New("cell is out of range")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrGameNotFound     = errors.New("game not found")
)
