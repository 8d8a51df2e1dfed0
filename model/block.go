package model

import (
	"fmt"
	"strings"
)

// Classification is the semantic category assigned to a block
type Classification int

const (
	// ClassEmpty marks a block without lines
	ClassEmpty Classification = iota
	// ClassParagraph marks flowing prose with a steady left margin
	ClassParagraph
	// ClassTable marks aligned multi-column data
	ClassTable
	// ClassUnknown marks a block no rule matched
	ClassUnknown
)

// String returns a string representation of the classification
func (c Classification) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassParagraph:
		return "paragraph"
	case ClassTable:
		return "table"
	default:
		return "unknown"
	}
}

// ParseClassification converts a label back into a Classification
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return ClassEmpty, nil
	case "paragraph":
		return ClassParagraph, nil
	case "table":
		return ClassTable, nil
	case "unknown":
		return ClassUnknown, nil
	default:
		return ClassUnknown, fmt.Errorf("unknown classification %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Classification) UnmarshalText(b []byte) error {
	v, err := ParseClassification(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Line is a set of tokens sharing a vertical band, sorted left to right
type Line struct {
	// Tokens are copies of the grouped tokens, ordered by HPos
	Tokens []Token

	// AvgVPos is the mean vertical position of the tokens
	AvgVPos float64

	// IsTable is set by the block classifier for lines of a table block
	IsTable bool
}

// NewLine builds a line from tokens that are already ordered by HPos
func NewLine(tokens []Token) Line {
	line := Line{Tokens: append([]Token(nil), tokens...)}
	if len(tokens) == 0 {
		return line
	}
	total := 0.0
	for _, t := range tokens {
		total += Finite(t.VPos)
	}
	line.AvgVPos = total / float64(len(tokens))
	return line
}

// Left returns the leftmost token position (0 for an empty line)
func (l Line) Left() float64 {
	if len(l.Tokens) == 0 {
		return 0
	}
	left := l.Tokens[0].HPos
	for _, t := range l.Tokens[1:] {
		if t.HPos < left {
			left = t.HPos
		}
	}
	return left
}

// Right returns the rightmost token edge (0 for an empty line)
func (l Line) Right() float64 {
	if len(l.Tokens) == 0 {
		return 0
	}
	right := l.Tokens[0].Right()
	for _, t := range l.Tokens[1:] {
		if r := t.Right(); r > right {
			right = r
		}
	}
	return right
}

// Text joins token contents with single spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Content
	}
	return strings.Join(parts, " ")
}

// Metrics are the measurements the classifier derived for a block
type Metrics struct {
	LeftMarginMean     float64
	LeftMarginVariance float64
	AvgContentWidth    float64
	ColumnBins         []float64
	BigGapRatio        float64
	AlignmentScore     float64
}

// MultiColumn reports whether at least two column bins were found
func (m Metrics) MultiColumn() bool {
	return len(m.ColumnBins) >= 2
}

// Block is a contiguous run of lines judged to belong together
type Block struct {
	Lines          []Line
	Classification Classification
	Metrics        Metrics
}

// TokenCount returns the number of tokens across all lines
func (b *Block) TokenCount() int {
	n := 0
	for _, l := range b.Lines {
		n += len(l.Tokens)
	}
	return n
}

// Tokens flattens the block's tokens in line order
func (b *Block) Tokens() []Token {
	var out []Token
	for _, l := range b.Lines {
		out = append(out, l.Tokens...)
	}
	return out
}

// BBox returns the bounding box of every token in the block
func (b *Block) BBox() BBox {
	var box BBox
	first := true
	for _, l := range b.Lines {
		for _, t := range l.Tokens {
			if first {
				box = t.BBox()
				first = false
				continue
			}
			box = box.Union(t.BBox())
		}
	}
	return box
}

// Text returns the block's lines joined by newlines
func (b *Block) Text() string {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = l.Text()
	}
	return strings.Join(lines, "\n")
}
