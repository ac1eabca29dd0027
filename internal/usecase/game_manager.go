package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/connectfour"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager serialises adapter calls into the session and mirrors the live game into the store.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newID    func() string

	mu      sync.Mutex
	session *connectfour.Session
	gameID  string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, session *connectfour.Session) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    uuid.NewString,
		session:  session,
	}
}

// StartGame seats two players and returns the new game.
func (that *GameManager) StartGame(ctx context.Context, player1, player2 entity.Player) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "StartGame")

	if err := that.session.Start(player1, player2); err != nil {
		log.Warn("failed to start game", "error", err)
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	that.gameID = that.newID()
	game := that.snapshot()
	that.syncGame(ctx, game)

	log.Info("game started", "gameID", game.ID, "first", player1, "second", player2)

	return game, nil
}

// MakeTurn drops a piece for the active player.
func (that *GameManager) MakeTurn(ctx context.Context, column int) (connectfour.Outcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "gameID", that.gameID, "column", column)

	mover := that.session.ActivePlayer()

	outcome, err := that.session.PlayMove(column)
	if err != nil {
		return connectfour.Outcome{}, fmt.Errorf("failed to make turn: %w", err)
	}

	switch outcome.Kind {
	case connectfour.OutcomeColumnFull:
		log.Debug("column is full", "player", mover)
	case connectfour.OutcomeContinue:
		log.Debug("turn accepted", "player", mover, "row", outcome.Row, "next", outcome.Player)
		that.syncGame(ctx, that.snapshot())
	case connectfour.OutcomeWon, connectfour.OutcomeTied:
		log.Info("game finished", "result", outcome.Kind.String(), "winner", outcome.Player)
		that.cleanupGame(ctx)
	}

	return outcome, nil
}

// ResetGame discards the current board; the next game needs StartGame again.
func (that *GameManager) ResetGame(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.session.Reset(); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.cleanupGame(ctx)
	that.logger.Info("game reset")

	return nil
}

func (that *GameManager) CellAt(row, column int) (entity.Cell, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.CellAt(row, column)
}

// Game returns a copy of the session state.
func (that *GameManager) Game() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// LiveGame reads the mirrored snapshot of the game in progress from the store.
func (that *GameManager) LiveGame(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	gameID := that.gameID
	that.mu.Unlock()

	if gameID == "" {
		return nil, fmt.Errorf("%w: no game in progress", apperror.ErrGameNotFound)
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get live game: %w", err)
	}

	return game, nil
}

func (that *GameManager) snapshot() *entity.Game {
	game := that.session.Game()
	game.ID = that.gameID
	return game
}

// syncGame is best effort: the session stays authoritative when the store is unavailable.
func (that *GameManager) syncGame(ctx context.Context, game *entity.Game) {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		that.logger.Error("failed to store game", "gameID", game.ID, "error", err)
	}
}

func (that *GameManager) cleanupGame(ctx context.Context) {
	if that.gameID == "" {
		return
	}

	log := that.logger.With("method", "cleanupGame", "gameID", that.gameID)

	if err := that.gameRepo.DeleteByID(ctx, that.gameID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
	}

	that.gameID = ""
}
