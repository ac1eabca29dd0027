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

	"github.com/rocketscienceinc/connectfour/internal/config"
	"github.com/rocketscienceinc/connectfour/internal/connectfour"
	"github.com/rocketscienceinc/connectfour/internal/repository"
	"github.com/rocketscienceinc/connectfour/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour/internal/usecase"
	"github.com/rocketscienceinc/connectfour/transport/terminal"
)

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownStorageType = errors.New("unknown storage driver")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStore, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStore.Close(); err != nil {
			log.Error("could not close game storage", "error", err)
		}
	}()

	session, err := connectfour.NewSession(conf.Board.Height, conf.Board.Width,
		connectfour.WithPlayerValidator(terminal.ValidateColors))
	if err != nil {
		return fmt.Errorf("could not create game session: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, gameRepo, session)
	adapter := terminal.New(logger, gameManager, conf.Players.First, conf.Players.Second, os.Stdin, os.Stdout)

	log.Info("Starting terminal game", "storage", conf.Storage.Driver,
		"height", conf.Board.Height, "width", conf.Board.Width)

	if err = adapter.Run(ctx); err != nil {
		return fmt.Errorf("terminal game error: %w", err)
	}

	log.Info("Terminal game finished, shutting down")

	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, io.Closer, error) {
	switch conf.Storage.Driver {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(), nopCloser{}, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage.Connection), redisStorage, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageType, conf.Storage.Driver)
	}
}
