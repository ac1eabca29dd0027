package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const (
	liveGamePrefix = "game:"
	// abandoned snapshots expire even if the process dies before cleanup
	liveGameTTL = 24 * time.Hour
)

// ErrGameNotFound is returned when no live game is stored under the id.
var ErrGameNotFound = apperror.ErrGameNotFound

// GameRepository keeps the snapshot of the game being played.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type redisGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &redisGame{
		client: client,
	}
}

func liveGameKey(id string) string {
	return liveGamePrefix + id
}

// CreateOrUpdate overwrites the snapshot and refreshes its expiry.
func (that *redisGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	payload, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game %s: %w", game.ID, err)
	}

	if err = that.client.Set(ctx, liveGameKey(game.ID), payload, liveGameTTL).Err(); err != nil {
		return fmt.Errorf("failed to store game %s: %w", game.ID, err)
	}

	return nil
}

func (that *redisGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	payload, err := that.client.Get(ctx, liveGameKey(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	case err != nil:
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	game := &entity.Game{}
	if err = json.Unmarshal(payload, game); err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", id, err)
	}

	return game, nil
}

func (that *redisGame) DeleteByID(ctx context.Context, id string) error {
	removed, err := that.client.Del(ctx, liveGameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}

	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	return nil
}
