package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/spatialtext/model"
)

// FlowConfig holds configuration for flowed text output
type FlowConfig struct {
	// LineGap is the largest vertical gap that keeps two lines on one
	// output line (default: 12)
	LineGap float64 `yaml:"line_gap"`

	// ParagraphGap is the extra distance beyond SectionGap that adds one
	// more break (default: 20)
	ParagraphGap float64 `yaml:"paragraph_gap"`

	// SectionGap is the gap above which a blank line is inserted. Gaps
	// between LineGap and SectionGap produce a single break (default: 40)
	SectionGap float64 `yaml:"section_gap"`

	// MaxBreaks caps the breaks inserted for one gap (default: 5)
	MaxBreaks int `yaml:"max_breaks"`

	// CharWidth converts horizontal distance into spaces for table lines
	// (default: 6)
	CharWidth float64 `yaml:"char_width"`

	// MinTableSpaces and MaxTableSpaces clamp the filler between two table
	// tokens (defaults: 1 and 20)
	MinTableSpaces int `yaml:"min_table_spaces"`
	MaxTableSpaces int `yaml:"max_table_spaces"`
}

// DefaultFlowConfig returns sensible default configuration
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		LineGap:        12,
		ParagraphGap:   20,
		SectionGap:     40,
		MaxBreaks:      5,
		CharWidth:      6,
		MinTableSpaces: 1,
		MaxTableSpaces: 20,
	}
}

// Formatter renders lines as flowed text
type Formatter struct {
	config FlowConfig
}

// NewFormatter creates a formatter with default configuration
func NewFormatter() *Formatter {
	return &Formatter{
		config: DefaultFlowConfig(),
	}
}

// NewFormatterWithConfig creates a formatter with custom configuration
func NewFormatterWithConfig(config FlowConfig) *Formatter {
	return &Formatter{
		config: config,
	}
}

// Config returns the formatter's configuration
func (f *Formatter) Config() FlowConfig {
	return f.config
}

// BreakCount converts a vertical gap into a number of line breaks. The result
// never decreases as the gap grows and never exceeds MaxBreaks:
//
//	gap <= LineGap               0
//	gap <= SectionGap            1
//	otherwise                    2 + floor((gap - SectionGap) / ParagraphGap)
func (f *Formatter) BreakCount(gap float64) int {
	if math.IsNaN(gap) || gap <= f.config.LineGap {
		return 0
	}

	n := 1
	if gap > f.config.SectionGap {
		n = 2
		if f.config.ParagraphGap > 0 {
			extra := math.Floor((gap - f.config.SectionGap) / f.config.ParagraphGap)
			if extra > float64(f.config.MaxBreaks) {
				extra = float64(f.config.MaxBreaks)
			}
			n += int(extra)
		}
	}

	if f.config.MaxBreaks > 0 && n > f.config.MaxBreaks {
		n = f.config.MaxBreaks
	}
	return n
}

// FormatLine renders one line. Plain lines join their tokens with single
// spaces; table lines separate tokens by the horizontal distance between
// them, converted to spaces and clamped to [MinTableSpaces, MaxTableSpaces].
func (f *Formatter) FormatLine(line model.Line) string {
	if !line.IsTable {
		return line.Text()
	}

	var sb strings.Builder
	for i, t := range line.Tokens {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", f.TableSpaces(line.Tokens[i-1], t)))
		}
		sb.WriteString(t.Content)
	}
	return sb.String()
}

// TableSpaces returns the filler between two adjacent table tokens
func (f *Formatter) TableSpaces(cur, next model.Token) int {
	n := f.config.MinTableSpaces
	if f.config.CharWidth > 0 {
		gap := model.Finite(next.HPos) - (model.Finite(cur.HPos) + model.Finite(cur.Width))
		if !math.IsNaN(gap) && !math.IsInf(gap, 0) {
			v := math.Round(gap / f.config.CharWidth)
			switch {
			case v > float64(f.config.MaxTableSpaces):
				n = f.config.MaxTableSpaces
			case v > float64(n):
				n = int(v)
			}
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Format renders lines as linear text. Lines are sorted by AvgVPos and the
// gap between successive lines decides the separator: zero breaks joins them
// with a space, otherwise that many newlines are written. A table line never
// shares an output line with its neighbour.
func (f *Formatter) Format(lines []model.Line) string {
	if len(lines) == 0 {
		return ""
	}

	sorted := make([]model.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgVPos < sorted[j].AvgVPos
	})

	var sb strings.Builder
	var prev *model.Line
	for i := range sorted {
		line := sorted[i]
		if len(line.Tokens) == 0 {
			continue
		}
		if prev != nil {
			breaks := f.BreakCount(line.AvgVPos - prev.AvgVPos)
			if breaks == 0 && (line.IsTable || prev.IsTable) {
				breaks = 1
			}
			if breaks == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(strings.Repeat("\n", breaks))
			}
		}
		sb.WriteString(f.FormatLine(line))
		prev = &sorted[i]
	}
	return sb.String()
}

// FormatBlocks renders the lines of every block as one flowed document
func (f *Formatter) FormatBlocks(blocks []model.Block) string {
	var lines []model.Line
	for _, b := range blocks {
		lines = append(lines, b.Lines...)
	}
	return f.Format(lines)
}

// Breaks returns, for lines sorted by AvgVPos, the break count before each
// line. The first entry is always 0.
func (f *Formatter) Breaks(lines []model.Line) []int {
	out := make([]int, len(lines))
	for i := 1; i < len(lines); i++ {
		out[i] = f.BreakCount(lines[i].AvgVPos - lines[i-1].AvgVPos)
	}
	return out
}
