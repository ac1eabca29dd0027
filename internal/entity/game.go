package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusTied       Status = "tied"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the state of one connect four session.
type Game struct {
	ID      string    `json:"id"`
	Board   *Board    `json:"board,omitempty"`
	Players [2]Player `json:"players"`
	Turn    Player    `json:"turn,omitempty"`
	Winner  Player    `json:"winner,omitempty"`
	Status  Status    `json:"status"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Status: StatusNotStarted,
	}
}

func (that *Game) IsNotStarted() bool {
	return that.Status == StatusNotStarted
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusTied
}

// ConfirmInProgress returns ErrIllegalState unless moves are accepted.
func (that *Game) ConfirmInProgress() error {
	switch that.Status {
	case StatusInProgress:
		return nil
	case StatusNotStarted:
		return fmt.Errorf("%w: game is not started", apperror.ErrIllegalState)
	case StatusWon, StatusTied:
		return fmt.Errorf("%w: game is already finished", apperror.ErrIllegalState)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Opponent returns the other participant.
func (that *Game) Opponent(player Player) Player {
	if player == that.Players[0] {
		return that.Players[1]
	}
	return that.Players[0]
}

// Clone returns a copy that shares no board with the original.
func (that *Game) Clone() *Game {
	clone := *that
	if that.Board != nil {
		clone.Board = that.Board.Clone()
	}
	return &clone
}
