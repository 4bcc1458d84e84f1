package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/pkg"
)

// gameUI is the player-facing side of a session.
type gameUI interface {
	Welcome()
	Render(board entity.Board)
	Prompt(mark entity.Mark)
	ReadLine(ctx context.Context) (string, error)
	ReportFormatError()
	ReportInvalidMove()
	AnnounceWinner(mark entity.Mark)
	AnnounceDraw()
}

const cleanupTimeout = 5 * time.Second

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
}

// Session plays one game between two players sharing the same UI.
type Session struct {
	logger   *slog.Logger
	ui       gameUI
	gameRepo gameRepo
}

func NewSession(logger *slog.Logger, ui gameUI, gameRepo gameRepo) *Session {
	return &Session{
		logger:   logger.With("component", "session"),
		ui:       ui,
		gameRepo: gameRepo,
	}
}

// Run plays a game from an empty board until it is won or drawn.
// Only input failures and cancellation end it early.
func (that *Session) Run(ctx context.Context) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID)
	log := that.logger.With("method", "Run", "gameID", game.ID)

	that.ui.Welcome()
	that.ui.Render(game.Board)
	that.mirror(ctx, log, game)

	for game.IsAwaitingMove() {
		if err = that.RequestMove(ctx, game); err != nil {
			that.cleanup(ctx, log, game)
			return game, fmt.Errorf("failed to request move: %w", err)
		}

		that.ui.Render(game.Board)
		that.mirror(ctx, log, game)
	}

	switch {
	case game.IsWon():
		that.ui.AnnounceWinner(game.Winner)
		log.Info("game won", "winner", game.Winner)
	case game.IsDraw():
		that.ui.AnnounceDraw()
		log.Info("game drawn")
	}

	that.cleanup(ctx, log, game)

	return game, nil
}

// RequestMove prompts the player whose turn it is until one move is applied.
// Bad input is reported to the player and never returned.
func (that *Session) RequestMove(ctx context.Context, game *entity.Game) error {
	if err := game.ConfirmAwaitingMove(); err != nil {
		return err
	}

	mark := game.Turn
	log := that.logger.With("method", "RequestMove", "gameID", game.ID, "player", mark)

	for {
		that.ui.Prompt(mark)

		input, err := that.ui.ReadLine(ctx)
		if err != nil {
			return fmt.Errorf("failed to read move: %w", err)
		}

		cell, err := entity.ParseMove(input)
		if err == nil {
			err = game.MakeTurn(mark, cell)
		}

		switch {
		case err == nil:
			log.Debug("move accepted", "cell", cell)
			return nil
		case errors.Is(err, apperror.ErrInvalidInput):
			log.Debug("move rejected", "error", err)
			that.ui.ReportFormatError()
		case errors.Is(err, apperror.ErrInvalidMove):
			log.Debug("move rejected", "error", err)
			that.ui.ReportInvalidMove()
		default:
			return fmt.Errorf("failed to make turn: %w", err)
		}
	}
}

// mirror publishes the game state. Failures are logged and play goes on.
func (that *Session) mirror(ctx context.Context, log *slog.Logger, game *entity.Game) {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to mirror game", "error", err)
	}
}

// cleanup removes the mirrored game. It runs even after cancellation.
func (that *Session) cleanup(ctx context.Context, log *slog.Logger, game *entity.Game) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}
