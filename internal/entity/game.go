package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	StatusAwaitingMove = "awaiting_move"
	StatusWon          = "won"
	StatusDraw         = "draw"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Turn   Mark   `json:"player_turn"`
	Winner Mark   `json:"winner,omitempty"`
	Status string `json:"status"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusAwaitingMove,
	}
}

// MakeTurn places mark on cell and moves the game to its next state.
// The board is left untouched when an error is returned.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if err := that.ConfirmAwaitingMove(); err != nil {
		return err
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark
	that.UpdateGameState()

	return nil
}

// UpdateGameState settles the outcome of the last move made by Turn.
// Win is checked before draw: a winning move may also fill the board.
func (that *Game) UpdateGameState() {
	switch {
	case that.Board.HasWon(that.Turn):
		that.Winner = that.Turn
		that.Status = StatusWon
	case that.Board.IsDraw():
		that.Status = StatusDraw
	default:
		that.Status = StatusAwaitingMove
		that.Turn = that.Turn.Opponent()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsAwaitingMove() bool {
	return that.Status == StatusAwaitingMove
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// ConfirmAwaitingMove returns an error unless the game accepts another move.
func (that *Game) ConfirmAwaitingMove() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsAwaitingMove():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
