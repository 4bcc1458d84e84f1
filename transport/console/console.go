package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	cellSeparator = " | "
	rowDivider    = "---------"
	emptyCell     = " "
)

type line struct {
	text string
	err  error
}

// Console is the terminal side of a game session.
type Console struct {
	logger *slog.Logger
	out    io.Writer

	reader    *bufio.Reader
	lines     chan line
	done      chan struct{}
	closeOnce sync.Once
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		out:    out,
		reader: bufio.NewReader(in),
		done:   make(chan struct{}),
	}
}

// Close stops delivering input. A read already blocked on the underlying
// reader ends with that read; its line is dropped.
func (that *Console) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// Welcome prints the greeting shown once before the first board.
func (that *Console) Welcome() {
	that.println("Welcome to Tic Tac Toe!")
}

// Render prints the board as three rows joined by " | " with dashed dividers.
func (that *Console) Render(board entity.Board) {
	var builder strings.Builder

	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, 0, entity.BoardSize)
		for _, mark := range board[row*entity.BoardSize : (row+1)*entity.BoardSize] {
			cells = append(cells, cellString(mark))
		}

		builder.WriteString(strings.Join(cells, cellSeparator))
		builder.WriteByte('\n')

		if row < entity.BoardSize-1 {
			builder.WriteString(rowDivider)
			builder.WriteByte('\n')
		}
	}

	that.print(builder.String())
}

// Prompt asks mark's player for a move. No newline is written.
func (that *Console) Prompt(mark entity.Mark) {
	that.print(fmt.Sprintf("Player %s, enter your move (1-9): ", mark))
}

func (that *Console) ReportFormatError() {
	that.println("Please enter a number between 1 and 9.")
}

func (that *Console) ReportInvalidMove() {
	that.println("Invalid move. Try again.")
}

func (that *Console) AnnounceWinner(mark entity.Mark) {
	that.println(fmt.Sprintf("Player %s wins!", mark))
}

func (that *Console) AnnounceDraw() {
	that.println("It's a draw!")
}

// ReadLine blocks until a line is typed or ctx is done. Lines of any length are accepted.
// It returns apperror.ErrInputClosed once the input is exhausted or the console is closed.
func (that *Console) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-that.done:
		return "", apperror.ErrInputClosed
	default:
	}

	if that.lines == nil {
		that.lines = make(chan line)
		go that.scan()
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("read line: %w", ctx.Err())
	case <-that.done:
		return "", apperror.ErrInputClosed
	case next, ok := <-that.lines:
		if !ok {
			return "", apperror.ErrInputClosed
		}
		if next.err != nil {
			return "", fmt.Errorf("read line: %w", next.err)
		}
		return next.text, nil
	}
}

// scan feeds input lines to ReadLine until input ends or Close is called.
func (that *Console) scan() {
	defer close(that.lines)

	for {
		text, err := that.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			that.send(line{err: err})
			return
		}

		// a final line without a newline still counts
		if text != "" && !that.send(line{text: trimNewline(text)}) {
			return
		}

		if err != nil {
			return
		}
	}
}

func (that *Console) send(next line) bool {
	select {
	case that.lines <- next:
		return true
	case <-that.done:
		return false
	}
}

func trimNewline(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

func (that *Console) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}

func (that *Console) println(text string) {
	that.print(text + "\n")
}

func cellString(mark entity.Mark) string {
	if mark == entity.EmptyCell {
		return emptyCell
	}
	return mark.String()
}
