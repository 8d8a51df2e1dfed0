// Package session holds the editing state of one page: its tokens, the
// derived lines and blocks, the grid they are placed on, a viewport into
// that grid and the bookkeeping that avoids needless rebuilds.
//
// A Session is owned by a single goroutine. Callers serialize access.
package session

import (
	"math"

	"github.com/tsawler/spatialtext/change"
	"github.com/tsawler/spatialtext/grid"
	"github.com/tsawler/spatialtext/layout"
	"github.com/tsawler/spatialtext/model"
)

// Config holds configuration for a session
type Config struct {
	Layout layout.AnalyzerConfig `yaml:"layout"`
	Flow   layout.FlowConfig     `yaml:"flow"`
	Grid   grid.Config           `yaml:"grid"`

	// ViewWidth and ViewHeight size the viewport (defaults: 80, 25)
	ViewWidth  int `yaml:"view_width"`
	ViewHeight int `yaml:"view_height"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Layout:     layout.DefaultAnalyzerConfig(),
		Flow:       layout.DefaultFlowConfig(),
		Grid:       grid.DefaultConfig(),
		ViewWidth:  80,
		ViewHeight: 25,
	}
}

// Session is the editor state for the current page
type Session struct {
	analyzer  *layout.Analyzer
	formatter *layout.Formatter
	quantizer *grid.Quantizer

	page   int
	store  *model.TokenStore
	native []model.Block // block structure supplied by the source, if any

	result   *layout.AnalysisResult
	grid     *grid.Grid
	report   grid.PlaceReport
	viewport grid.Viewport
	detector change.Detector

	// fractional scroll not yet applied to the viewport
	scrollX, scrollY float64

	editDropped   int
	gridDirty     bool
	repaintNeeded bool
}

// New creates a session with default configuration
func New() *Session {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a session with custom configuration
func NewWithConfig(config Config) *Session {
	return &Session{
		analyzer:  layout.NewAnalyzerWithConfig(config.Layout),
		formatter: layout.NewFormatterWithConfig(config.Flow),
		quantizer: grid.NewQuantizerWithConfig(config.Grid, config.Flow),
		store:     model.NewTokenStore(),
		viewport:  grid.NewViewport(config.ViewWidth, config.ViewHeight),
		gridDirty: true,
	}
}

// LoadPage discards the current page and takes tokens as page index. The
// grid is rebuilt on the next read or explicit Rebuild.
func (s *Session) LoadPage(index int, tokens []model.Token) {
	s.reset(index)
	for _, t := range tokens {
		s.store.AddToken(t)
	}
}

// LoadBlocks is LoadPage for sources that carry their own block structure.
// Each block's tokens are regrouped into lines but never merged with other
// blocks.
func (s *Session) LoadBlocks(index int, blocks []model.Block) {
	s.reset(index)
	s.native = make([]model.Block, len(blocks))
	for i := range blocks {
		var kept []model.Token
		for _, t := range blocks[i].Tokens() {
			tok, ok := model.NewToken(t.Content, t.HPos, t.VPos, t.Width, t.Height)
			if !ok {
				continue
			}
			s.store.AddToken(tok)
			kept = append(kept, tok)
		}
		if len(kept) > 0 {
			s.native[i].Lines = []model.Line{model.NewLine(kept)}
		}
	}
}

func (s *Session) reset(index int) {
	s.page = index
	s.store.Reset()
	s.native = nil
	s.result = nil
	s.report = grid.PlaceReport{}
	s.detector.Reset()
	s.scrollX, s.scrollY = 0, 0
	s.viewport.OffsetX, s.viewport.OffsetY = 0, 0
	s.editDropped = 0
	s.gridDirty = true
	s.repaintNeeded = true
}

// Rebuild regroups and reclassifies the page's tokens, grows the grid to fit
// and places everything again.
func (s *Session) Rebuild() {
	if s.native != nil {
		s.result = s.analyzer.AnalyzeBlocks(s.native)
	} else {
		s.result = s.analyzer.Analyze(s.store.Tokens())
	}

	if s.grid == nil {
		s.grid, s.report = s.quantizer.Build(s.result.Blocks)
	} else {
		s.report = s.quantizer.Rebuild(s.grid, s.result.Blocks)
	}

	s.detector.Observe(grid.ToText(s.grid))
	s.editDropped = 0
	s.gridDirty = false
	s.repaintNeeded = true
}

func (s *Session) ensure() {
	if s.gridDirty || s.grid == nil {
		s.Rebuild()
	}
}

// Page returns the index of the loaded page
func (s *Session) Page() int {
	return s.page
}

// Tokens returns the page's tokens
func (s *Session) Tokens() []model.Token {
	return s.store.Tokens()
}

// Lines returns the page's lines, top to bottom
func (s *Session) Lines() []model.Line {
	s.ensure()
	return s.result.Lines
}

// Blocks returns the page's classified blocks
func (s *Session) Blocks() []model.Block {
	s.ensure()
	return s.result.Blocks
}

// Summary returns the page's block counts
func (s *Session) Summary() layout.PageSummary {
	s.ensure()
	return s.result.Summary
}

// Grid returns the page's grid. Callers must not modify it.
func (s *Session) Grid() *grid.Grid {
	s.ensure()
	return s.grid
}

// Report returns the outcome of the last placement
func (s *Session) Report() grid.PlaceReport {
	s.ensure()
	return s.report
}

// EditDropped returns how many runes of the last applied edit fell outside
// the grid
func (s *Session) EditDropped() int {
	return s.editDropped
}

// Text returns the grid as linear text
func (s *Session) Text() string {
	s.ensure()
	return grid.ToText(s.grid)
}

// FlowText returns the page as flowed text, independent of the grid
func (s *Session) FlowText() string {
	s.ensure()
	return s.formatter.FormatBlocks(s.result.Blocks)
}

// ApplyEdit writes edited linear text back onto the grid. The text is placed
// at the row where Text() began, so an unchanged layout stays in place. It
// reports false, leaving the grid alone, when the text matches the current
// state.
func (s *Session) ApplyEdit(text string) bool {
	s.ensure()
	if !s.detector.Changed(text) {
		return false
	}

	row, _, ok := grid.ContentRows(s.grid)
	if !ok {
		row = 0
	}
	s.editDropped = grid.FromTextAt(s.grid, text, row, 0)
	s.detector.Observe(text)
	s.repaintNeeded = true
	return true
}

// Scroll moves the viewport by fractional columns and rows, such as mouse
// wheel deltas. Fractions accumulate until they add up to whole cells.
// Offsets stop at zero.
func (s *Session) Scroll(dx, dy float64) {
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		dx = 0
	}
	if math.IsNaN(dy) || math.IsInf(dy, 0) {
		dy = 0
	}

	s.scrollX += dx
	s.scrollY += dy
	wholeX := math.Trunc(s.scrollX)
	wholeY := math.Trunc(s.scrollY)
	if wholeX == 0 && wholeY == 0 {
		return
	}
	s.scrollX -= wholeX
	s.scrollY -= wholeY

	before := s.viewport
	s.viewport.Scroll(clampInt(wholeX), clampInt(wholeY))
	if s.viewport != before {
		s.repaintNeeded = true
	}
}

// ScrollTo moves the viewport to an absolute position
func (s *Session) ScrollTo(x, y int) {
	before := s.viewport
	s.viewport.OffsetX = max(x, 0)
	s.viewport.OffsetY = max(y, 0)
	s.scrollX, s.scrollY = 0, 0
	if s.viewport != before {
		s.repaintNeeded = true
	}
}

// Resize changes the viewport size
func (s *Session) Resize(width, height int) {
	before := s.viewport
	s.viewport.Resize(width, height)
	if s.viewport != before {
		s.repaintNeeded = true
	}
}

// Viewport returns the current viewport
func (s *Session) Viewport() grid.Viewport {
	return s.viewport
}

// ViewportText renders the visible part of the grid
func (s *Session) ViewportText() string {
	s.ensure()
	return s.viewport.Text(s.grid)
}

// GridDirty reports whether the grid is stale relative to the tokens
func (s *Session) GridDirty() bool {
	return s.gridDirty
}

// RepaintNeeded reports whether the visible output changed since the last
// MarkPainted
func (s *Session) RepaintNeeded() bool {
	return s.repaintNeeded
}

// MarkPainted clears the repaint flag
func (s *Session) MarkPainted() {
	s.repaintNeeded = false
}

func clampInt(v float64) int {
	const limit = 1 << 30
	return int(math.Max(-limit, math.Min(limit, v)))
}
