package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidInput = errors.New("input is not a number")
	ErrInvalidMove  = errors.New("invalid move")
	ErrInputClosed  = errors.New("input closed")

	ErrCellOccupied   = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrCellOutOfRange = fmt.Errorf("%w: cell is out of range", ErrInvalidMove)
)
