package tui

import (
	"strings"

	"github.com/lox/pingpong/internal/pong"
)

type cell uint8

const (
	cellEmpty cell = iota
	cellNet
	cellPlayer
	cellAI
	cellBall
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2

// arenaSize picks a grid that fits within maxCols and keeps the arena's
// proportions.
func arenaSize(l pong.Layout, maxCols int) (cols, rows int) {
	cols = max(maxCols, 20)
	rows = int(float64(cols) * l.ArenaHeight / l.ArenaWidth / cellAspect)
	return cols, max(rows, 5)
}

// rasterize maps a snapshot onto a cols x rows grid.
func rasterize(snap pong.Snapshot, cols, rows int) [][]cell {
	l := snap.Layout
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		if r%2 == 0 {
			grid[r][cols/2] = cellNet
		}
	}
	if l.ArenaWidth <= 0 || l.ArenaHeight <= 0 {
		return grid
	}

	col := func(x float64) int {
		return min(max(int(x*float64(cols)/l.ArenaWidth), 0), cols-1)
	}
	row := func(y float64) int {
		return min(max(int(y*float64(rows)/l.ArenaHeight), 0), rows-1)
	}
	paddle := func(x, y float64, c cell) {
		cx := col(x + l.PaddleWidth/2)
		// The bottom edge is exclusive so an 80px paddle does not spill
		// into the next row when it sits exactly on a boundary.
		for r := row(y); r <= row(y+l.PaddleHeight-1e-6); r++ {
			grid[r][cx] = c
		}
	}

	s := snap.State
	paddle(l.PlayerPaddleX(), s.PlayerY, cellPlayer)
	paddle(l.AIPaddleX(), s.AIY, cellAI)
	grid[row(s.BallY+l.BallSize/2)][col(s.BallX+l.BallSize/2)] = cellBall
	return grid
}

// renderArena draws the grid with styles applied.
func renderArena(snap pong.Snapshot, cols, rows int) string {
	grid := rasterize(snap, cols, rows)

	glyphs := map[cell]string{
		cellEmpty:  " ",
		cellNet:    NetStyle.Render("┊"),
		cellPlayer: PlayerPaddleStyle.Render("█"),
		cellAI:     AIPaddleStyle.Render("█"),
		cellBall:   BallStyle.Render("●"),
	}

	var b strings.Builder
	for r, line := range grid {
		for _, c := range line {
			b.WriteString(glyphs[c])
		}
		if r < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return ArenaStyle.Render(b.String())
}
