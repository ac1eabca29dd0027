package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

type OutcomeKind int

const (
	OutcomeColumnFull OutcomeKind = iota
	OutcomeContinue
	OutcomeWon
	OutcomeTied
)

func (that OutcomeKind) String() string {
	switch that {
	case OutcomeColumnFull:
		return "column_full"
	case OutcomeContinue:
		return "continue"
	case OutcomeWon:
		return "won"
	case OutcomeTied:
		return "tied"
	default:
		return fmt.Sprintf("outcome(%d)", int(that))
	}
}

// Outcome is the result of an accepted PlayMove call.
// Player is the next active player for OutcomeContinue and the winner for OutcomeWon.
// Row and Column locate the placed piece and are zero for OutcomeColumnFull.
type Outcome struct {
	Kind   OutcomeKind
	Player entity.Player
	Row    int
	Column int
}

// PlayerValidator lets an adapter reject identifiers on top of the distinctness check.
type PlayerValidator func(first, second entity.Player) error

type Option func(*Session)

func WithPlayerValidator(validator PlayerValidator) Option {
	return func(session *Session) {
		session.validatePlayers = validator
	}
}

// Session drives one game at a time: turn order, win detection and the terminal decision.
// It is not safe for concurrent use.
type Session struct {
	height int
	width  int

	validatePlayers PlayerValidator

	game *entity.Game
}

func NewSession(height, width int, opts ...Option) (*Session, error) {
	board, err := entity.NewBoard(height, width)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &Session{
		height: height,
		width:  width,
		game:   entity.NewGame(""),
	}
	session.game.Board = board

	for _, opt := range opts {
		opt(session)
	}

	return session, nil
}

// Start seats two distinct players on a fresh board; player1 moves first.
func (that *Session) Start(player1, player2 entity.Player) error {
	if !that.game.IsNotStarted() {
		return fmt.Errorf("%w: cannot start a game in status %s", apperror.ErrIllegalState, that.game.Status)
	}

	if err := that.checkPlayers(player1, player2); err != nil {
		return err
	}

	board, err := entity.NewBoard(that.height, that.width)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	that.game.Board = board
	that.game.Players = [2]entity.Player{player1, player2}
	that.game.Turn = player1
	that.game.Winner = entity.NoPlayer
	that.game.Status = entity.StatusInProgress

	return nil
}

func (that *Session) checkPlayers(player1, player2 entity.Player) error {
	if player1.IsEmpty() || player2.IsEmpty() {
		return fmt.Errorf("%w: player identifiers must not be empty", apperror.ErrInvalidPlayers)
	}

	if player1 == player2 {
		return fmt.Errorf("%w: both players are %q", apperror.ErrInvalidPlayers, player1)
	}

	if that.validatePlayers == nil {
		return nil
	}

	if err := that.validatePlayers(player1, player2); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPlayers, err)
	}

	return nil
}

// PlayMove drops a piece for the active player. A full column yields OutcomeColumnFull and changes nothing.
func (that *Session) PlayMove(column int) (Outcome, error) {
	if err := that.game.ConfirmInProgress(); err != nil {
		return Outcome{}, err
	}

	board := that.game.Board
	mover := that.game.Turn

	row, ok, err := board.DropColumn(column)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid move: %w", err)
	}

	if !ok {
		return Outcome{Kind: OutcomeColumnFull, Player: mover}, nil
	}

	if err = board.Place(row, column, mover); err != nil {
		return Outcome{}, fmt.Errorf("failed to place piece: %w", err)
	}

	// win is checked before the full board so that a winning last piece is not a tie
	if HasWinningRun(board, mover) {
		that.game.Winner = mover
		that.game.Status = entity.StatusWon
		return Outcome{Kind: OutcomeWon, Player: mover, Row: row, Column: column}, nil
	}

	if board.IsFull() {
		that.game.Status = entity.StatusTied
		return Outcome{Kind: OutcomeTied, Row: row, Column: column}, nil
	}

	that.game.Turn = that.game.Opponent(mover)

	return Outcome{Kind: OutcomeContinue, Player: that.game.Turn, Row: row, Column: column}, nil
}

func (that *Session) CellAt(row, column int) (entity.Cell, error) {
	cell, err := that.game.Board.CellAt(row, column)
	if err != nil {
		return entity.Cell{}, fmt.Errorf("failed to read cell: %w", err)
	}

	return cell, nil
}

// Reset discards the board and returns to the not started state.
func (that *Session) Reset() error {
	if that.game.IsNotStarted() {
		return fmt.Errorf("%w: game is not started", apperror.ErrIllegalState)
	}

	board, err := entity.NewBoard(that.height, that.width)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	that.game = entity.NewGame("")
	that.game.Board = board

	return nil
}

func (that *Session) Status() entity.Status {
	return that.game.Status
}

func (that *Session) ActivePlayer() entity.Player {
	return that.game.Turn
}

func (that *Session) Winner() entity.Player {
	return that.game.Winner
}

func (that *Session) Height() int {
	return that.height
}

func (that *Session) Width() int {
	return that.width
}

// Game returns a copy of the current state.
func (that *Session) Game() *entity.Game {
	return that.game.Clone()
}
