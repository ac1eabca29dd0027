package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/connectfour"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const (
	commandQuit   = "quit"
	commandReset  = "reset"
	commandStatus = "status"
	commandHelp   = "help"
)

type gameManager interface {
	StartGame(ctx context.Context, player1, player2 entity.Player) (*entity.Game, error)
	MakeTurn(ctx context.Context, column int) (connectfour.Outcome, error)
	ResetGame(ctx context.Context) error
	CellAt(row, column int) (entity.Cell, error)
	Game() *entity.Game
	LiveGame(ctx context.Context) (*entity.Game, error)
}

// Adapter plays a game between two people sharing one terminal.
type Adapter struct {
	logger  *slog.Logger
	manager gameManager
	players [2]entity.Player

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, manager gameManager, first, second string, in io.Reader, out io.Writer) *Adapter {
	return &Adapter{
		logger:  logger.With("component", "terminal"),
		manager: manager,
		players: [2]entity.Player{entity.Player(first), entity.Player(second)},
		in:      in,
		out:     out,
	}
}

// Run starts a game and processes input lines until quit, end of input or ctx cancellation.
func (that *Adapter) Run(ctx context.Context) error {
	if err := that.startGame(ctx); err != nil {
		return err
	}

	var scanErr error
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = scanner.Err()
	}()

	for {
		that.prompt()

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return fmt.Errorf("failed to read input: %w", scanErr)
				}
				return nil
			}

			quit, err := that.handleLine(ctx, line)
			if err != nil {
				return err
			}

			if quit {
				that.printf("Bye!\n")
				return nil
			}
		}
	}
}

func (that *Adapter) handleLine(ctx context.Context, line string) (bool, error) {
	command := strings.ToLower(strings.TrimSpace(line))

	switch command {
	case "":
		return false, nil
	case commandQuit, "exit":
		return true, nil
	case commandReset:
		return false, that.restartGame(ctx)
	case commandStatus:
		return false, that.printStatus(ctx)
	case commandHelp:
		that.printHelp()
		return false, nil
	}

	column, err := strconv.Atoi(command)
	if err != nil {
		that.printf("Unknown command %q.\n", line)
		that.printHelp()
		return false, nil
	}

	return false, that.playColumn(ctx, column)
}

func (that *Adapter) startGame(ctx context.Context) error {
	_, err := that.manager.StartGame(ctx, that.players[0], that.players[1])
	if errors.Is(err, apperror.ErrInvalidPlayers) {
		that.printf("Please choose 2 valid different colors!\n")
		return err
	}

	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.render()
}

func (that *Adapter) restartGame(ctx context.Context) error {
	if err := that.manager.ResetGame(ctx); err != nil && !errors.Is(err, apperror.ErrIllegalState) {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.logger.Debug("game restarted")

	return that.startGame(ctx)
}

func (that *Adapter) playColumn(ctx context.Context, column int) error {
	log := that.logger.With("method", "playColumn", "column", column)

	outcome, err := that.manager.MakeTurn(ctx, column)

	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		that.printf("Column must be between 0 and %d.\n", that.manager.Game().Board.Width()-1)
		return nil
	case errors.Is(err, apperror.ErrIllegalState):
		that.printf("The game is over. Type '%s' to play again.\n", commandReset)
		return nil
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return fmt.Errorf("failed to play column %d: %w", column, err)
	}

	switch outcome.Kind {
	case connectfour.OutcomeColumnFull:
		that.printf("Column %d is full.\n", column)
		return nil
	case connectfour.OutcomeContinue:
		return that.render()
	case connectfour.OutcomeWon:
		if err = that.render(); err != nil {
			return err
		}
		that.printf("The %s player won!\n", outcome.Player)
	case connectfour.OutcomeTied:
		if err = that.render(); err != nil {
			return err
		}
		that.printf("Tie!\n")
	}

	return nil
}

func (that *Adapter) printStatus(ctx context.Context) error {
	game, err := that.manager.LiveGame(ctx)
	if errors.Is(err, apperror.ErrGameNotFound) {
		game = that.manager.Game()
	} else if err != nil {
		return fmt.Errorf("failed to get game status: %w", err)
	}

	switch game.Status {
	case entity.StatusInProgress:
		that.printf("Game %s: %s to move.\n", game.ID, game.Turn)
	case entity.StatusWon:
		that.printf("The %s player won.\n", game.Winner)
	case entity.StatusTied:
		that.printf("The game is tied.\n")
	default:
		that.printf("No game in progress.\n")
	}

	return nil
}

func (that *Adapter) render() error {
	board := that.manager.Game().Board
	return renderBoard(that.out, that.manager, board.Height(), board.Width(), that.players)
}

func (that *Adapter) prompt() {
	game := that.manager.Game()
	if game.IsInProgress() {
		that.printf("%s> ", game.Turn)
		return
	}
	that.printf("> ")
}

func (that *Adapter) printHelp() {
	that.printf("Type a column number to drop a piece, '%s' for a new game, '%s' or '%s'.\n",
		commandReset, commandStatus, commandQuit)
}

func (that *Adapter) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Debug("failed to write output", "error", err)
	}
}
