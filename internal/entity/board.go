package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// WinCombos lists the rows, columns and diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the nine cells, indexed row by row from the top-left corner.
type Board [CellCount]Mark

// HasWon reports whether any line on the board is fully occupied by mark.
func (that Board) HasWon(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw reports whether every cell is taken. It says nothing about winners,
// so callers must check HasWon first.
func (that Board) IsDraw() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Count returns the number of cells holding mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// ParseMove converts a player's 1-9 input into a cell index.
func ParseMove(input string) (int, error) {
	move, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidInput, input)
	}

	if move < 1 || move > CellCount {
		return 0, fmt.Errorf("%w: move %d", apperror.ErrCellOutOfRange, move)
	}

	return move - 1, nil
}
