package spatialtext

import (
	"context"
	"fmt"
	"io"

	"github.com/tsawler/spatialtext/alto"
	"github.com/tsawler/spatialtext/config"
	"github.com/tsawler/spatialtext/format"
	"github.com/tsawler/spatialtext/grid"
	"github.com/tsawler/spatialtext/layout"
	"github.com/tsawler/spatialtext/model"
	"github.com/tsawler/spatialtext/session"
	"github.com/tsawler/spatialtext/tables"
)

// Extractor provides a fluent interface for reconstructing the layout of one
// page. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	// In-memory sources
	tokens   []model.Token
	blocks   []model.Block
	inMemory bool
	native   bool

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		format:   e.format,
		tokens:   e.tokens,
		blocks:   e.blocks,
		inMemory: e.inMemory,
		native:   e.native,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Page selects the page to process (1-indexed). The default is the first
// page.
//
// Example:
//
//	text, _, err := spatialtext.Open("report.pdf").Page(3).Text()
func (e *Extractor) Page(n int) *Extractor {
	newExt := e.clone()
	newExt.options.page = n
	return newExt
}

// Flowed places lines on the grid one after another, spaced by their
// vertical gaps, instead of at their source coordinates.
//
// Example:
//
//	text, _, err := spatialtext.Open("letter.xml").Flowed().GridText()
func (e *Extractor) Flowed() *Extractor {
	newExt := e.clone()
	p := grid.PolicyFlowed
	newExt.options.policy = &p
	return newExt
}

// RawGrid places every token at its source coordinates. Tables and
// side-by-side columns keep their alignment.
//
// Example:
//
//	text, _, err := spatialtext.Open("invoice.pdf").RawGrid().GridText()
func (e *Extractor) RawGrid() *Extractor {
	newExt := e.clone()
	p := grid.PolicyRaw
	newExt.options.policy = &p
	return newExt
}

// WithConfig replaces the pipeline configuration
//
// Example:
//
//	cfg, err := config.Load("spatialtext.yaml")
//	...
//	text, _, err := spatialtext.Open("scan.hocr").WithConfig(cfg).Text()
func (e *Extractor) WithConfig(cfg config.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = cfg
	newExt.options.config.Pdfalto.Args = append([]string(nil), cfg.Pdfalto.Args...)
	return newExt
}

// UsePdfalto converts PDF input with the pdfalto tool instead of the
// built-in reader. pdfalto keeps the producer's block structure.
func (e *Extractor) UsePdfalto() *Extractor {
	newExt := e.clone()
	newExt.options.usePdfalto = true
	return newExt
}

// PdfaltoBinary sets the pdfalto executable and enables UsePdfalto
//
// Example:
//
//	text, _, err := spatialtext.Open("doc.pdf").PdfaltoBinary("/opt/bin/pdfalto").Text()
func (e *Extractor) PdfaltoBinary(path string) *Extractor {
	newExt := e.clone()
	newExt.options.config.Pdfalto.Binary = path
	newExt.options.usePdfalto = true
	return newExt
}

// ViewSize sets the viewport size of sessions created by Session()
func (e *Extractor) ViewSize(width, height int) *Extractor {
	newExt := e.clone()
	newExt.options.viewWidth = width
	newExt.options.viewHeight = height
	return newExt
}

// WithContext bounds external tool invocations, such as pdfalto, by ctx
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// sessionConfig builds the session configuration from the options
func (e *Extractor) sessionConfig() session.Config {
	cfg := e.options.config
	return session.Config{
		Layout:     cfg.Layout,
		Flow:       cfg.Flow,
		Grid:       e.options.gridConfig(),
		ViewWidth:  e.options.viewWidth,
		ViewHeight: e.options.viewHeight,
	}
}

// open loads the page into a new session
func (e *Extractor) open() (*session.Session, *pageData, []Warning, error) {
	pd, err := e.loadPage()
	if err != nil {
		return nil, nil, nil, err
	}

	warnings := append([]Warning(nil), pd.warnings...)
	if pd.empty() {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyPage,
			Page:    e.options.page,
			Message: "no text found",
		})
	}

	s := session.NewWithConfig(e.sessionConfig())
	if pd.blocks != nil {
		s.LoadBlocks(e.options.page-1, pd.blocks)
	} else {
		s.LoadPage(e.options.page-1, pd.tokens)
	}
	s.Rebuild()
	return s, pd, warnings, nil
}

// Text returns the page as flowed text: lines joined by spaces or separated
// by as many newlines as their vertical gap implies, with table rows keeping
// proportional spacing between cells. An empty page yields empty text and a
// warning.
//
// Example:
//
//	text, warnings, err := spatialtext.Open("page_1.xml").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	s, _, warnings, err := e.open()
	if err != nil {
		return "", nil, err
	}
	return s.FlowText(), warnings, nil
}

// GridText returns the page rendered on the character grid, with blank rows
// above and below the content removed. Characters that could not be placed
// are reported as warnings.
//
// Example:
//
//	text, warnings, err := spatialtext.Open("invoice.pdf").RawGrid().GridText()
func (e *Extractor) GridText() (string, []Warning, error) {
	s, _, warnings, err := e.open()
	if err != nil {
		return "", nil, err
	}
	warnings = append(warnings, placementWarnings(e.options.page, s.Report())...)
	return s.Text(), warnings, nil
}

// Grid returns the page's character grid
func (e *Extractor) Grid() (*grid.Grid, []Warning, error) {
	s, _, warnings, err := e.open()
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, placementWarnings(e.options.page, s.Report())...)
	return s.Grid(), warnings, nil
}

// Blocks returns the page's classified blocks, top to bottom
//
// Example:
//
//	blocks, err := spatialtext.Open("scan.hocr").Blocks()
//	for _, b := range blocks {
//	    fmt.Println(b.Classification, b.Text())
//	}
func (e *Extractor) Blocks() ([]model.Block, error) {
	s, _, _, err := e.open()
	if err != nil {
		return nil, err
	}
	return s.Blocks(), nil
}

// Analyze returns the lines, blocks and block counts of the page
func (e *Extractor) Analyze() (*layout.AnalysisResult, error) {
	s, _, _, err := e.open()
	if err != nil {
		return nil, err
	}
	return &layout.AnalysisResult{
		Lines:   s.Lines(),
		Blocks:  s.Blocks(),
		Summary: s.Summary(),
	}, nil
}

// Tables extracts tables from the blocks classified as tables
//
// Example:
//
//	tables, err := spatialtext.Open("invoice.pdf").Tables()
//	for _, t := range tables {
//	    fmt.Println(t.ToMarkdown())
//	}
func (e *Extractor) Tables() ([]*model.Table, error) {
	blocks, err := e.Blocks()
	if err != nil {
		return nil, err
	}

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(e.options.config.Tables); err != nil {
		return nil, err
	}
	return detector.Detect(blocks)
}

// Session returns an editing session holding the page. The caller owns it.
//
// Example:
//
//	s, _, err := spatialtext.Open("page_1.xml").ViewSize(100, 40).Session()
//	s.Scroll(0, 3.5)
//	fmt.Println(s.ViewportText())
func (e *Extractor) Session() (*session.Session, []Warning, error) {
	s, _, warnings, err := e.open()
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, placementWarnings(e.options.page, s.Report())...)
	return s, warnings, nil
}

// WriteALTO writes the page's tokens, grouped into the classified blocks,
// as ALTO XML
func (e *Extractor) WriteALTO(w io.Writer) ([]Warning, error) {
	s, pd, warnings, err := e.open()
	if err != nil {
		return nil, err
	}

	width, height := pd.width, pd.height
	if width <= 0 || height <= 0 {
		width, height = model.TokenBounds(s.Tokens())
	}
	page := alto.NewPage(fmt.Sprintf("Page%d", e.options.page), width, height, s.Blocks())
	doc := &alto.Document{MeasurementUnit: "pixel", Pages: []alto.Page{page}}
	if err := alto.Export(w, doc); err != nil {
		return nil, err
	}
	return warnings, nil
}

// PageCount returns the number of pages in the source
func (e *Extractor) PageCount() (int, error) {
	return e.pageCount()
}
