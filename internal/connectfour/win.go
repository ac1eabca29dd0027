package connectfour

import "github.com/rocketscienceinc/connectfour/internal/entity"

const runLength = 4

type direction struct {
	dRow    int
	dColumn int
}

var directions = [...]direction{
	{dRow: 0, dColumn: 1},  // right
	{dRow: 1, dColumn: 0},  // down
	{dRow: 1, dColumn: 1},  // down-right
	{dRow: 1, dColumn: -1}, // down-left
}

// HasWinningRun scans every origin cell in every direction for four cells owned by player.
func HasWinningRun(board *entity.Board, player entity.Player) bool {
	if player.IsEmpty() {
		return false
	}

	for row := 0; row < board.Height(); row++ {
		for column := 0; column < board.Width(); column++ {
			for _, dir := range directions {
				if isWinningRun(board, row, column, dir, player) {
					return true
				}
			}
		}
	}

	return false
}

// isWinningRun checks the run of four cells starting at (row, column) and stepping by dir.
func isWinningRun(board *entity.Board, row, column int, dir direction, player entity.Player) bool {
	for step := 0; step < runLength; step++ {
		if !board.OwnedBy(row+step*dir.dRow, column+step*dir.dColumn, player) {
			return false
		}
	}

	return true
}
