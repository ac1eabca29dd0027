package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const (
	firstMark  = "X"
	secondMark = "O"
	emptyMark  = "."
)

type cellReader interface {
	CellAt(row, column int) (entity.Cell, error)
}

// renderBoard writes the column indexes followed by the grid, top row first.
func renderBoard(w io.Writer, cells cellReader, height, width int, players [2]entity.Player) error {
	var sb strings.Builder

	line := make([]string, width)
	for column := range line {
		line[column] = strconv.Itoa(column)
	}
	sb.WriteString(strings.Join(line, " ") + "\n")

	for row := 0; row < height; row++ {
		for column := range line {
			cell, err := cells.CellAt(row, column)
			if err != nil {
				return fmt.Errorf("failed to render board: %w", err)
			}
			line[column] = mark(cell, players)
		}
		sb.WriteString(strings.Join(line, " ") + "\n")
	}

	sb.WriteString(fmt.Sprintf("%s = %s, %s = %s\n", firstMark, players[0], secondMark, players[1]))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func mark(cell entity.Cell, players [2]entity.Player) string {
	switch {
	case cell.IsEmpty():
		return emptyMark
	case cell.Owner == players[0]:
		return firstMark
	case cell.Owner == players[1]:
		return secondMark
	default:
		return "?"
	}
}
