package model

import "strings"

// Table represents a table with cells organized in rows and columns
type Table struct {
	Rows [][]Cell
	BBox BBox

	// Columns holds the horizontal centroid of each column
	Columns []float64

	// AlignmentScore is the block's cross-line alignment score (0-1)
	AlignmentScore float64
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []Cell) {
		for j, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell.Text, "\n", " "))
			sb.WriteString(" ")
			if j == len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	// Header row
	writeRow(t.Rows[0])

	// Separator
	for j := range t.Rows[0] {
		sb.WriteString("|---")
		if j == len(t.Rows[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 1; i < len(t.Rows); i++ {
		writeRow(t.Rows[i])
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	Text     string
	BBox     BBox
	IsHeader bool
}

// AppendToken adds a token's content to the cell, growing its bounding box
func (c *Cell) AppendToken(t Token) {
	if c.Text == "" {
		c.Text = t.Content
		c.BBox = t.BBox()
		return
	}
	c.Text += " " + t.Content
	c.BBox = c.BBox.Union(t.BBox())
}
