package model

import "errors"

var (
	ErrInvalidLocation = errors.New("location out of bounds")
	ErrIllegalMove     = errors.New("illegal move")
	ErrIllegalAction   = errors.New("illegal action")
	ErrGameFull        = errors.New("game is full")
	ErrWrongState      = errors.New("operation not allowed in current game state")
	ErrGameOver        = errors.New("game is over")
	ErrOccupied        = errors.New("cell already holds a piece")
	ErrNoPiece         = errors.New("no piece at location")
	ErrNotYourTurn     = errors.New("not your turn")
)
