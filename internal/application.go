package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-console/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays one game on the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// run plays one game over in and out. Cancellation of ctx is a normal exit.
func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	con := console.New(logger, in, out)
	defer con.Close()

	session := usecase.NewSession(logger, con, gameRepo)

	game, err := session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("Received signal, shutting down")
		return nil
	}
	if err != nil {
		return fmt.Errorf("game session failed: %w", err)
	}

	log.Info("Game over", "gameID", game.ID, "status", game.Status)

	return nil
}

// newGameRepository picks the Redis mirror when enabled and reachable, and a no-op store otherwise.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewDiscardGameRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		log.Error("could not connect to redis storage, game will not be mirrored", "addr", redisAddrString, "error", err)
		return repository.NewDiscardGameRepository(), func() {}, nil
	}

	log.Debug("Mirroring game to redis", "addr", redisAddrString)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.Redis.TTL), closeFn, nil
}
