package grid

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/spatialtext/model"
)

// Continuation fills the second cell of a double-width rune
const Continuation rune = 0

// Grid is a rectangular buffer of runes sized in cells
type Grid struct {
	cells  [][]rune
	width  int
	height int

	// CharWidth and LineHeight convert source coordinates to cells
	CharWidth  float64
	LineHeight float64
}

// New creates a blank grid. Dimensions below 1 are raised to 1 and
// non-positive scales fall back to the defaults.
func New(width, height int, charWidth, lineHeight float64) *Grid {
	def := DefaultConfig()
	if !validScale(charWidth) {
		charWidth = def.CharWidth
	}
	if !validScale(lineHeight) {
		lineHeight = def.LineHeight
	}
	g := &Grid{CharWidth: charWidth, LineHeight: lineHeight}
	g.Grow(max(width, 1), max(height, 1))
	return g
}

// NewWithConfig creates a blank grid of the configured minimum size
func NewWithConfig(cfg Config) *Grid {
	return New(cfg.MinWidth, cfg.MinHeight, cfg.CharWidth, cfg.LineHeight)
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Grow enlarges the grid to at least width × height. Existing cells keep
// their content; the grid never shrinks.
func (g *Grid) Grow(width, height int) {
	if width > g.width {
		for r := range g.cells {
			g.cells[r] = append(g.cells[r], blankRow(width-g.width)...)
		}
		g.width = width
	}
	for len(g.cells) < height {
		g.cells = append(g.cells, blankRow(g.width))
	}
	if height > g.height {
		g.height = height
	}
}

// Clear fills every cell with a space
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for c := range row {
			row[c] = ' '
		}
	}
}

// At returns the rune at row, col, or a space when out of range
func (g *Grid) At(row, col int) rune {
	if !g.inBounds(row, col) {
		return ' '
	}
	return g.cells[row][col]
}

// Set writes a rune and reports whether the cell was inside the grid
func (g *Grid) Set(row, col int, r rune) bool {
	if !g.inBounds(row, col) {
		return false
	}
	g.cells[row][col] = r
	return true
}

// Occupied reports whether the cell holds something other than a space
func (g *Grid) Occupied(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row][col] != ' '
}

// Column converts a horizontal source coordinate to a clamped column
func (g *Grid) Column(x float64) int {
	return quantize(x, g.CharWidth, g.width)
}

// Row converts a vertical source coordinate to a clamped row
func (g *Grid) Row(y float64) int {
	return quantize(y, g.LineHeight, g.height)
}

// Cells returns a copy of the buffer
func (g *Grid) Cells() [][]rune {
	out := make([][]rune, len(g.cells))
	for r, row := range g.cells {
		out[r] = append([]rune(nil), row...)
	}
	return out
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// quantize returns clamp(floor(v / scale), 0, limit-1)
func quantize(v, scale float64, limit int) int {
	if limit <= 0 {
		return 0
	}
	cell := math.Floor(model.Finite(v) / scale)
	if math.IsNaN(cell) || cell < 0 {
		return 0
	}
	if cell >= float64(limit) {
		return limit - 1
	}
	return int(cell)
}

// RuneCells returns the number of cells a rune occupies: 2 for wide runes,
// 1 for everything else, including zero-width runes
func RuneCells(r rune) int {
	if runewidth.RuneWidth(r) == 2 {
		return 2
	}
	return 1
}

// StringCells returns the number of cells a string occupies
func StringCells(s string) int {
	n := 0
	for _, r := range s {
		n += RuneCells(r)
	}
	return n
}

// cellRune maps a rune from text to the rune stored in a cell. U+0000 would
// read back as Continuation, so it becomes a space.
func cellRune(r rune) rune {
	if r == Continuation {
		return ' '
	}
	return r
}

func blankRow(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
