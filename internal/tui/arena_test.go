package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pingpong/internal/pong"
)

func findCells(grid [][]cell, want cell) (positions [][2]int) {
	for r, line := range grid {
		for c, v := range line {
			if v == want {
				positions = append(positions, [2]int{r, c})
			}
		}
	}
	return positions
}

func TestArenaSizeKeepsProportions(t *testing.T) {
	cols, rows := arenaSize(pong.DefaultLayout(), 80)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 25, rows)

	cols, rows = arenaSize(pong.DefaultLayout(), 4)
	assert.Equal(t, 20, cols)
	assert.Equal(t, 6, rows)
}

func TestRasterizeCentredState(t *testing.T) {
	snap := idleSnapshot()
	grid := rasterize(snap, 80, 25)
	require.Len(t, grid, 25)
	require.Len(t, grid[0], 80)

	player := findCells(grid, cellPlayer)
	ai := findCells(grid, cellAI)
	ball := findCells(grid, cellBall)

	// 80px is four 20px rows, but a centred paddle straddles five.
	assert.Len(t, player, 5)
	assert.Len(t, ai, 5)
	require.Len(t, ball, 1)

	for _, p := range player {
		assert.Equal(t, 2, p[1], "player paddle column")
	}
	for _, p := range ai {
		assert.Equal(t, 77, p[1], "ai paddle column")
	}
	assert.Equal(t, [2]int{12, 40}, ball[0])
}

func TestRasterizeClampsToGrid(t *testing.T) {
	snap := idleSnapshot()
	snap.State.PlayerY = snap.Layout.PaddleTravel()
	snap.State.AIY = 0
	snap.State.BallX = -30
	snap.State.BallY = snap.Layout.ArenaHeight

	grid := rasterize(snap, 40, 12)
	ball := findCells(grid, cellBall)
	require.Len(t, ball, 1)
	assert.Equal(t, [2]int{11, 0}, ball[0])

	player := findCells(grid, cellPlayer)
	require.NotEmpty(t, player)
	assert.Equal(t, 11, player[len(player)-1][0], "player paddle sits on the bottom row")

	ai := findCells(grid, cellAI)
	require.NotEmpty(t, ai)
	assert.Equal(t, 0, ai[0][0])
}

func TestRenderArenaPlain(t *testing.T) {
	out := renderArena(idleSnapshot(), 40, 12)
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "┊")
	assert.Equal(t, 12+2, len(strings.Split(out, "\n")), "rows plus border")
}
