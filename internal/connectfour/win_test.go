package connectfour

import (
	"testing"

	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	playerA entity.Player = "A"
	playerB entity.Player = "B"
)

// boardFromRows builds a board from rows of 'A', 'B' and '.' (empty), top row first.
func boardFromRows(t *testing.T, rows ...string) *entity.Board {
	t.Helper()

	require.NotEmpty(t, rows)

	board, err := entity.NewBoard(len(rows), len(rows[0]))
	require.NoError(t, err)

	for row, line := range rows {
		require.Len(t, line, board.Width())
		for column, mark := range line {
			if mark == '.' {
				continue
			}
			require.NoError(t, board.Place(row, column, entity.Player(string(mark))))
		}
	}

	return board
}

func mirrorRows(rows []string) []string {
	mirrored := make([]string, len(rows))
	for i, line := range rows {
		runes := []rune(line)
		for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
			runes[l], runes[r] = runes[r], runes[l]
		}
		mirrored[i] = string(runes)
	}
	return mirrored
}

func TestHasWinningRun(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
		want bool
	}{
		{
			name: "Horizontal run",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"..AAAA.",
			},
			want: true,
		},
		{
			name: "Vertical run",
			rows: []string{
				".......",
				".......",
				"A......",
				"A......",
				"A......",
				"A......",
			},
			want: true,
		},
		{
			name: "Down-right diagonal run",
			rows: []string{
				".......",
				".......",
				"...A...",
				"...BA..",
				"...BBA.",
				"...BBBA",
			},
			want: true,
		},
		{
			name: "Down-left diagonal run",
			rows: []string{
				".......",
				".......",
				"...A...",
				"..AB...",
				".ABB...",
				"ABBB...",
			},
			want: true,
		},
		{
			name: "Three in a row is not a win",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"AAA.AAA",
			},
			want: false,
		},
		{
			name: "Opponent run does not count for the mover",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"BBBBAAA",
			},
			want: false,
		},
		{
			name: "Run does not wrap around rows",
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				"AA.....",
				".....AA",
			},
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a board in a known position
			board := boardFromRows(t, tc.rows...)

			// When: checking for a winning run of player A
			got := HasWinningRun(board, playerA)

			// Then: the result matches the position
			assert.Equal(t, tc.want, got)
		})

		t.Run(tc.name+" mirrored", func(t *testing.T) {
			// Given: the same position mirrored horizontally
			board := boardFromRows(t, mirrorRows(tc.rows)...)

			// Then: mirroring does not change the result
			assert.Equal(t, tc.want, HasWinningRun(board, playerA))
		})
	}
}

func TestHasWinningRun_Translation(t *testing.T) {
	// Given: a diagonal run at every origin where it still fits on the board
	for originRow := 0; originRow+runLength <= entity.DefaultHeight; originRow++ {
		for originColumn := 0; originColumn+runLength <= entity.DefaultWidth; originColumn++ {
			board, err := entity.NewBoard(entity.DefaultHeight, entity.DefaultWidth)
			require.NoError(t, err)

			for step := 0; step < runLength; step++ {
				require.NoError(t, board.Place(originRow+step, originColumn+step, playerA))
			}

			// Then: the run is detected wherever it is shifted
			assert.True(t, HasWinningRun(board, playerA), "origin %d,%d", originRow, originColumn)
		}
	}
}

func TestHasWinningRun_EmptyPlayer(t *testing.T) {
	// Given: an empty board
	board, err := entity.NewBoard(entity.DefaultHeight, entity.DefaultWidth)
	require.NoError(t, err)

	// Then: empty cells never form a run
	assert.False(t, HasWinningRun(board, entity.NoPlayer))
}

func TestHasWinningRun_ColumnDrops(t *testing.T) {
	// Given: player A drops four pieces into column 0, turn order aside
	board, err := entity.NewBoard(entity.DefaultHeight, entity.DefaultWidth)
	require.NoError(t, err)

	var rows []int
	for i := 0; i < runLength; i++ {
		row, ok, err := board.DropColumn(0)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, board.Place(row, 0, playerA))
		rows = append(rows, row)
	}

	// Then: the rows stack upward and the column is a win for A
	assert.Equal(t, []int{5, 4, 3, 2}, rows)
	assert.True(t, HasWinningRun(board, playerA))
	assert.False(t, HasWinningRun(board, playerB))
}

func TestIsWinningRun(t *testing.T) {
	board := boardFromRows(t,
		"....",
		"....",
		"....",
		"AAAA",
	)

	t.Run("Run inside the grid", func(t *testing.T) {
		assert.True(t, isWinningRun(board, 3, 0, directions[0], playerA))
	})

	t.Run("Run leaving the grid", func(t *testing.T) {
		assert.False(t, isWinningRun(board, 3, 1, directions[0], playerA))
		assert.False(t, isWinningRun(board, 3, 0, directions[1], playerA))
		assert.False(t, isWinningRun(board, 3, 3, directions[3], playerA))
	})
}
