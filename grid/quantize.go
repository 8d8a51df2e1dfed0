package grid

import (
	"math"
	"sort"

	"github.com/tsawler/spatialtext/layout"
	"github.com/tsawler/spatialtext/model"
)

// PlaceReport counts the outcome of a placement pass. Nothing is fatal;
// characters that could not be placed are counted here.
type PlaceReport struct {
	Policy Policy

	// Placed is the number of runes written
	Placed int

	// Dropped is the number of runes that fell outside the grid
	Dropped int

	// Collisions is the number of runes not written because their cell was
	// already taken
	Collisions int

	// TruncatedBlocks is the number of blocks whose tail was dropped after
	// the row bound was reached
	TruncatedBlocks int
}

// Lost returns the number of runes that are not on the grid
func (r PlaceReport) Lost() int {
	return r.Dropped + r.Collisions
}

// Quantizer places classified blocks on a grid
type Quantizer struct {
	config    Config
	formatter *layout.Formatter
}

// NewQuantizer creates a quantizer with default configuration
func NewQuantizer() *Quantizer {
	return NewQuantizerWithConfig(DefaultConfig(), layout.DefaultFlowConfig())
}

// NewQuantizerWithConfig creates a quantizer with custom configuration. The
// flow configuration drives row advances and table spacing in flowed
// placement.
func NewQuantizerWithConfig(config Config, flow layout.FlowConfig) *Quantizer {
	def := DefaultConfig()
	if !validScale(config.CharWidth) {
		config.CharWidth = def.CharWidth
	}
	if !validScale(config.LineHeight) {
		config.LineHeight = def.LineHeight
	}
	return &Quantizer{
		config:    config,
		formatter: layout.NewFormatterWithConfig(flow),
	}
}

// Config returns the quantizer's configuration
func (q *Quantizer) Config() Config {
	return q.config
}

// Resolve returns the concrete policy used for blocks
func (q *Quantizer) Resolve(blocks []model.Block) Policy {
	if q.config.Policy != PolicyAuto {
		return q.config.Policy
	}
	if layout.Summarize(blocks).PreferRaw() {
		return PolicyRaw
	}
	return PolicyFlowed
}

// Build creates a grid sized for blocks and places them on it
func (q *Quantizer) Build(blocks []model.Block) (*Grid, PlaceReport) {
	g := New(0, 0, q.config.CharWidth, q.config.LineHeight)
	report := q.Rebuild(g, blocks)
	return g, report
}

// Rebuild grows g to fit blocks, clears it and places the blocks again. The
// grid keeps its scale factors and never shrinks.
func (q *Quantizer) Rebuild(g *Grid, blocks []model.Block) PlaceReport {
	policy := q.Resolve(blocks)

	var tokens []model.Token
	for i := range blocks {
		tokens = append(tokens, blocks[i].Tokens()...)
	}
	width, height := SizeFor(tokens, q.config)
	if policy == PolicyFlowed {
		height = max(height, min(q.flowedRows(blocks)+q.config.PadRows, capOr(q.config.MaxHeight, math.MaxInt32)))
	}

	g.Grow(width, height)
	g.Clear()
	return q.place(g, blocks, policy)
}

// Place writes blocks onto g without resizing or clearing it
func (q *Quantizer) Place(g *Grid, blocks []model.Block) PlaceReport {
	return q.place(g, blocks, q.Resolve(blocks))
}

func (q *Quantizer) place(g *Grid, blocks []model.Block, policy Policy) PlaceReport {
	p := &placer{g: g, report: PlaceReport{Policy: policy}}
	if policy == PolicyFlowed {
		q.placeFlowed(p, blocks)
	} else {
		q.placeRaw(p, blocks)
	}
	return p.report
}

// placeRaw puts every line on the row of its AvgVPos. Each token starts at
// its own column or one cell past the previous token, whichever is further
// right.
func (q *Quantizer) placeRaw(p *placer, blocks []model.Block) {
	for _, block := range blocks {
		truncated := false
		for _, line := range block.Lines {
			if len(line.Tokens) == 0 {
				continue
			}
			if truncated {
				p.dropLine(line.Tokens)
				continue
			}

			p.row = p.g.Row(line.AvgVPos)
			p.startCol = p.g.Column(line.Tokens[0].HPos)
			next := -1
			for ti, t := range line.Tokens {
				col := p.g.Column(t.HPos)
				if next >= 0 {
					col = max(col, next+1)
				}
				p.col = col
				if !p.writeToken(t.Content) {
					p.dropLine(line.Tokens[ti+1:])
					truncated = true
					break
				}
				next = p.col
			}
		}
		if truncated {
			p.report.TruncatedBlocks++
		}
	}
}

// flowLine is a line tagged with the block it came from
type flowLine struct {
	line  model.Line
	block int
}

func sortedFlowLines(blocks []model.Block) []flowLine {
	var lines []flowLine
	for bi, block := range blocks {
		for _, line := range block.Lines {
			if len(line.Tokens) > 0 {
				lines = append(lines, flowLine{line: line, block: bi})
			}
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].line.AvgVPos < lines[j].line.AvgVPos
	})
	return lines
}

// advance returns the rows between two successive lines in flowed placement
func (q *Quantizer) advance(prev, cur model.Line) int {
	return max(1, q.formatter.BreakCount(cur.AvgVPos-prev.AvgVPos))
}

// flowedRows returns the rows flowed placement needs without wrapping
func (q *Quantizer) flowedRows(blocks []model.Block) int {
	lines := sortedFlowLines(blocks)
	if len(lines) == 0 {
		return 0
	}
	row := quantize(lines[0].line.AvgVPos, q.config.LineHeight, capOr(q.config.MaxHeight, 1<<30))
	for i := 1; i < len(lines); i++ {
		row += q.advance(lines[i-1].line, lines[i].line)
	}
	return row + 1
}

// placeFlowed gives each line a row below everything placed so far, spaced
// by the flow formatter's break count. Plain lines separate tokens by one
// cell; table lines keep their proportional spacing.
func (q *Quantizer) placeFlowed(p *placer, blocks []model.Block) {
	lines := sortedFlowLines(blocks)
	truncated := make(map[int]bool)
	lastRow := -1

	for i, fl := range lines {
		line := fl.line
		if truncated[fl.block] || lastRow >= p.g.height {
			p.dropLine(line.Tokens)
			truncated[fl.block] = true
			continue
		}

		if i == 0 {
			p.row = p.g.Row(line.AvgVPos)
		} else {
			p.row = lastRow + q.advance(lines[i-1].line, line)
		}
		if p.row >= p.g.height {
			p.dropLine(line.Tokens)
			truncated[fl.block] = true
			continue
		}

		p.startCol = p.g.Column(line.Left())
		p.col = p.startCol
		for ti, t := range line.Tokens {
			if ti > 0 {
				gap := 1
				if line.IsTable {
					gap = q.formatter.TableSpaces(line.Tokens[ti-1], t)
				}
				p.col += gap
			}
			if !p.writeToken(t.Content) {
				p.dropLine(line.Tokens[ti+1:])
				truncated[fl.block] = true
				break
			}
		}
		lastRow = p.row
	}

	p.report.TruncatedBlocks += len(truncated)
}

// placer holds the write cursor of one placement pass
type placer struct {
	g        *Grid
	report   PlaceReport
	row      int
	col      int
	startCol int
}

// writeToken writes s at the cursor. A token that does not fit on the rest
// of the row moves to the next row at the line's start column; a token that
// is too long even there wraps character by character. It returns false once
// the row bound is exceeded, after counting the unwritten runes as dropped.
func (p *placer) writeToken(s string) bool {
	width := p.g.width
	if p.col+StringCells(s) > width && p.col > p.startCol {
		p.row++
		p.col = p.startCol
	}

	runes := []rune(s)
	for i, r := range runes {
		n := RuneCells(r)
		if p.col+n > width {
			if n > width-p.startCol {
				p.report.Dropped++
				continue
			}
			p.row++
			p.col = p.startCol
		}
		if p.row >= p.g.height {
			p.report.Dropped += len(runes) - i
			return false
		}

		if p.g.Occupied(p.row, p.col) || (n == 2 && p.g.Occupied(p.row, p.col+1)) {
			p.report.Collisions++
		} else {
			p.g.cells[p.row][p.col] = cellRune(r)
			if n == 2 {
				p.g.cells[p.row][p.col+1] = Continuation
			}
			p.report.Placed++
		}
		p.col += n
	}
	return true
}

// dropLine counts the runes of tokens as dropped
func (p *placer) dropLine(tokens []model.Token) {
	for _, t := range tokens {
		p.report.Dropped += len([]rune(t.Content))
	}
}

func capOr(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}
