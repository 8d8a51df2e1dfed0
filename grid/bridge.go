package grid

import (
	"strings"
)

// rowText renders one row, skipping continuation cells, with trailing spaces
// removed
func (g *Grid) rowText(row int) string {
	var sb strings.Builder
	for _, r := range g.cells[row] {
		if r == Continuation {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// ContentRows returns the first and last rows holding a non-space cell. ok
// is false for a blank grid.
func ContentRows(g *Grid) (first, last int, ok bool) {
	first, last = -1, -1
	for r := 0; r < g.height; r++ {
		if g.rowText(r) == "" {
			continue
		}
		if first < 0 {
			first = r
		}
		last = r
	}
	if first < 0 {
		return 0, 0, false
	}
	return first, last, true
}

// ToText renders the grid as linear text. Each row loses its trailing
// spaces, and blank rows before the first and after the last content row are
// removed. Interior blank rows and leading spaces are kept.
func ToText(g *Grid) string {
	first, last, ok := ContentRows(g)
	if !ok {
		return ""
	}

	rows := make([]string, 0, last-first+1)
	for r := first; r <= last; r++ {
		rows = append(rows, g.rowText(r))
	}
	return strings.Join(rows, "\n")
}

// FromText clears the grid and writes text into it from the top-left cell.
// It returns the number of runes that fell outside the grid.
func FromText(g *Grid, text string) int {
	return FromTextAt(g, text, 0, 0)
}

// FromTextAt clears the grid and writes text with its first line at row and
// its first column at col. Lines map to rows and runes to cells; anything
// beyond the grid is dropped and counted rather than resizing the grid.
func FromTextAt(g *Grid, text string, row, col int) int {
	g.Clear()
	if text == "" {
		return 0
	}

	dropped := 0
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		r := row + i
		c := col
		for _, ch := range line {
			n := RuneCells(ch)
			if r < 0 || r >= g.height || c < 0 || c+n > g.width {
				dropped++
				c += n
				continue
			}
			g.cells[r][c] = cellRune(ch)
			if n == 2 {
				g.cells[r][c+1] = Continuation
			}
			c += n
		}
	}
	return dropped
}

// ViewportText renders a width × height window whose top-left cell is at
// (offsetY, offsetX). Negative offsets count as zero. Cells outside the grid
// render as spaces and every row loses its trailing spaces, so the result
// always has exactly height rows.
func ViewportText(g *Grid, offsetX, offsetY, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	offsetX = max(offsetX, 0)
	offsetY = max(offsetY, 0)

	rows := make([]string, height)
	var sb strings.Builder
	for r := 0; r < height; r++ {
		sb.Reset()
		row := offsetY + r
		for c := 0; c < width; c++ {
			ch := g.At(row, offsetX+c)
			switch {
			case ch == Continuation:
				// a wide rune that started left of the window
				if c == 0 {
					sb.WriteByte(' ')
				}
			case RuneCells(ch) == 2 && c == width-1:
				sb.WriteByte(' ')
			default:
				sb.WriteRune(ch)
			}
		}
		rows[r] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(rows, "\n")
}
