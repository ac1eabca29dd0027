package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
)

const (
	DefaultHeight = 6
	DefaultWidth  = 7
)

// Cell is a single grid position, either empty or owned by a player.
type Cell struct {
	Owner Player `json:"owner,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Owner.IsEmpty()
}

// Board is a height x width grid. Row 0 is the top row, pieces fall towards row height-1.
type Board struct {
	height int
	width  int
	cells  [][]Player
}

type boardJSON struct {
	Height int        `json:"height"`
	Width  int        `json:"width"`
	Cells  [][]Player `json:"cells"`
}

func NewBoard(height, width int) (*Board, error) {
	if height < 1 || width < 1 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, height, width)
	}

	cells := make([][]Player, height)
	for row := range cells {
		cells[row] = make([]Player, width)
	}

	return &Board{
		height: height,
		width:  width,
		cells:  cells,
	}, nil
}

func (that *Board) Height() int {
	return that.height
}

func (that *Board) Width() int {
	return that.width
}

func (that *Board) InBounds(row, column int) bool {
	return row >= 0 && row < that.height && column >= 0 && column < that.width
}

// DropColumn returns the lowest empty row of the column without placing anything.
// ok is false when the column is full.
func (that *Board) DropColumn(column int) (int, bool, error) {
	if column < 0 || column >= that.width {
		return 0, false, fmt.Errorf("%w: column %d", apperror.ErrOutOfRange, column)
	}

	for row := that.height - 1; row >= 0; row-- {
		if that.cells[row][column].IsEmpty() {
			return row, true, nil
		}
	}

	return 0, false, nil
}

// Place occupies an empty cell. Placing into an occupied cell is a caller bug and panics.
func (that *Board) Place(row, column int, player Player) error {
	if !that.InBounds(row, column) {
		return fmt.Errorf("%w: row %d, column %d", apperror.ErrOutOfRange, row, column)
	}

	if player.IsEmpty() {
		panic(fmt.Sprintf("board: placing empty player at %d,%d", row, column))
	}

	if owner := that.cells[row][column]; !owner.IsEmpty() {
		panic(fmt.Sprintf("board: cell %d,%d is already occupied by %q", row, column, owner))
	}

	that.cells[row][column] = player

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, owner := range row {
			if owner.IsEmpty() {
				return false
			}
		}
	}

	return true
}

func (that *Board) CellAt(row, column int) (Cell, error) {
	if !that.InBounds(row, column) {
		return Cell{}, fmt.Errorf("%w: row %d, column %d", apperror.ErrOutOfRange, row, column)
	}

	return Cell{Owner: that.cells[row][column]}, nil
}

// owner reads a cell without bounds checking; callers check InBounds first.
func (that *Board) owner(row, column int) Player {
	return that.cells[row][column]
}

// OwnedBy reports whether the cell is in bounds and belongs to player.
func (that *Board) OwnedBy(row, column int, player Player) bool {
	return that.InBounds(row, column) && that.owner(row, column) == player
}

// Clone returns a deep copy of the board.
func (that *Board) Clone() *Board {
	cells := make([][]Player, that.height)
	for row := range that.cells {
		cells[row] = make([]Player, that.width)
		copy(cells[row], that.cells[row])
	}

	return &Board{
		height: that.height,
		width:  that.width,
		cells:  cells,
	}
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Height: that.height,
		Width:  that.width,
		Cells:  that.cells,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := NewBoard(raw.Height, raw.Width)
	if err != nil {
		return err
	}

	if len(raw.Cells) != raw.Height {
		return fmt.Errorf("%w: got %d rows, want %d", apperror.ErrInvalidBoardSize, len(raw.Cells), raw.Height)
	}

	for row, cells := range raw.Cells {
		if len(cells) != raw.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoardSize, row, len(cells), raw.Width)
		}
		copy(board.cells[row], cells)
	}

	*that = *board

	return nil
}
