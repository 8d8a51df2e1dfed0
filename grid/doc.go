// Package grid places tokens on a fixed-resolution character canvas and
// converts that canvas to and from linear text.
//
// A [Grid] is a rectangular buffer of runes. A [Quantizer] maps source
// coordinates to cells (cell = floor(coord / scale), clamped to the grid) and
// places each block's tokens according to a [Policy]:
//
//   - [PolicyRaw] places tokens at their own coordinates; the first writer of
//     a cell wins and later writers are counted as collisions
//   - [PolicyFlowed] gives each line its own row, advancing rows by the flow
//     formatter's break counts, so collisions cannot happen
//   - [PolicyAuto] picks raw placement for pages with tables or side by side
//     regions and flowed placement otherwise
//
// Basic usage:
//
//	q := grid.NewQuantizer()
//	g, report := q.Build(blocks)
//	fmt.Println(grid.ToText(g))
//	fmt.Println(report.Dropped, "characters did not fit")
//
// # Editing
//
// [ToText] renders the grid with trailing spaces and outer blank rows
// trimmed. [FromText] and [FromTextAt] write edited text back; characters
// that fall outside the grid are dropped, never resized. [ContentRows]
// returns the offset at which [ToText] started so edits land where they
// came from.
//
// # Viewports
//
// [ViewportText] and [Viewport] render a bounded window of a grid. Any offset
// is valid; rows and columns outside the grid render as blanks.
//
// # Wide Characters
//
// Runes that are two columns wide (per go-runewidth) occupy two cells. The
// second cell holds [Continuation], which renderers skip.
package grid
