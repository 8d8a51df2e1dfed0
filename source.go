package spatialtext

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/spatialtext/alto"
	"github.com/tsawler/spatialtext/format"
	"github.com/tsawler/spatialtext/hocr"
	"github.com/tsawler/spatialtext/model"
	"github.com/tsawler/spatialtext/ocr"
	"github.com/tsawler/spatialtext/pdfalto"
	"github.com/tsawler/spatialtext/reader"
)

// ErrUnsupportedFormat is returned for files that are not PDF, ALTO, hOCR or
// a page image
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrPageNotFound is returned when the selected page does not exist
var ErrPageNotFound = errors.New("page not found")

// pageData holds the tokens of the selected page
type pageData struct {
	tokens []model.Token

	// blocks is the source's own block structure, nil when it has none
	blocks []model.Block

	// page size in source units, zero when unknown
	width, height float64

	warnings []Warning
}

// empty reports whether the page has no tokens
func (p *pageData) empty() bool {
	if p.blocks == nil {
		return len(p.tokens) == 0
	}
	for i := range p.blocks {
		if p.blocks[i].TokenCount() > 0 {
			return false
		}
	}
	return true
}

// resolveFormat confirms the format from the file content
func (e *Extractor) resolveFormat() (format.Format, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return format.Unknown, err
	}
	defer f.Close()

	return format.DetectFile(e.filename, f)
}

// loadPage reads the selected page from the source
func (e *Extractor) loadPage() (*pageData, error) {
	if e.inMemory {
		if e.options.page != 1 {
			return nil, fmt.Errorf("%w: %d of 1", ErrPageNotFound, e.options.page)
		}
		if e.native {
			return &pageData{blocks: e.blocks}, nil
		}
		return &pageData{tokens: e.tokens}, nil
	}

	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	f, err := e.resolveFormat()
	if err != nil {
		return nil, err
	}
	index := e.options.page - 1

	switch f {
	case format.PDF:
		if e.options.usePdfalto {
			return e.loadPdfalto(index)
		}
		return e.loadPDF(index)
	case format.ALTO:
		return e.loadALTO(index)
	case format.HOCR:
		return e.loadHOCR(index)
	case format.Image:
		return e.loadImage(index)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.filename)
	}
}

func (e *Extractor) loadPDF(index int) (*pageData, error) {
	r, err := reader.OpenWithConfig(e.filename, e.options.config.Reader)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tokens, err := r.PageTokens(index)
	if err != nil {
		if errors.Is(err, reader.ErrNoPage) {
			return nil, fmt.Errorf("%w: %d of %d", ErrPageNotFound, index+1, r.NumPages())
		}
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}
	width, height, _ := r.PageSize(index)
	return &pageData{tokens: tokens, width: width, height: height}, nil
}

func (e *Extractor) loadPdfalto(index int) (*pageData, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrPageNotFound, index+1)
	}
	runner := pdfalto.NewRunnerWithConfig(e.options.config.Pdfalto)
	doc, err := runner.Run(e.options.ctx, e.filename, index+1, index+1)
	if err != nil {
		return nil, err
	}
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrPageNotFound, index+1)
	}
	// pdfalto was asked for this page only
	page, _ := doc.Page(0)
	return altoPage(page), nil
}

func (e *Extractor) loadALTO(index int) (*pageData, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := alto.Parse(f)
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageNotFound, index+1, doc.PageCount())
	}
	return altoPage(page), nil
}

func altoPage(page *alto.Page) *pageData {
	return &pageData{
		blocks: page.Blocks(),
		width:  page.Width,
		height: page.Height,
	}
}

func (e *Extractor) loadHOCR(index int) (*pageData, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := hocr.Parse(f)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(doc.Pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageNotFound, index+1, len(doc.Pages))
	}
	page := doc.Pages[index]
	return &pageData{
		blocks: page.Blocks(),
		width:  page.BBox.Width,
		height: page.BBox.Height,
	}, nil
}

func (e *Extractor) loadImage(index int) (*pageData, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: %d of 1", ErrPageNotFound, index+1)
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, err
	}
	width, height, err := ocr.ImageSize(data)
	if err != nil {
		return nil, err
	}

	client, err := ocr.New()
	if err != nil {
		return nil, fmt.Errorf("image input: %w", err)
	}
	defer client.Close()

	if lang := e.options.config.OCR.Language; lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("image input: %w", err)
		}
	}
	words, err := client.Words(data)
	if err != nil {
		return nil, fmt.Errorf("image input: %w", err)
	}

	pd := &pageData{width: float64(width), height: float64(height)}
	kept := ocr.FilterConfidence(words, e.options.config.OCR.MinConfidence)
	if n := len(words) - len(kept); n > 0 {
		pd.warnings = append(pd.warnings, Warning{
			Code:    WarnLowConfidence,
			Page:    index + 1,
			Count:   n,
			Message: fmt.Sprintf("%d words below confidence %.0f were discarded", n, e.options.config.OCR.MinConfidence),
		})
	}
	pd.blocks = ocr.WordBlocks(kept)
	if pd.blocks == nil {
		pd.blocks = []model.Block{}
	}
	return pd, nil
}

// pageCount returns the number of pages in the source
func (e *Extractor) pageCount() (int, error) {
	if e.inMemory {
		return 1, nil
	}
	f, err := e.resolveFormat()
	if err != nil {
		return 0, err
	}

	switch f {
	case format.PDF:
		r, err := reader.Open(e.filename)
		if err != nil {
			return 0, err
		}
		defer r.Close()
		return r.NumPages(), nil
	case format.ALTO:
		file, err := os.Open(e.filename)
		if err != nil {
			return 0, err
		}
		defer file.Close()
		doc, err := alto.Parse(file)
		if err != nil {
			return 0, err
		}
		return doc.PageCount(), nil
	case format.HOCR:
		file, err := os.Open(e.filename)
		if err != nil {
			return 0, err
		}
		defer file.Close()
		doc, err := hocr.Parse(file)
		if err != nil {
			return 0, err
		}
		return len(doc.Pages), nil
	case format.Image:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.filename)
	}
}
