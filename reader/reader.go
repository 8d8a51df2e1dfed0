package reader

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/tsawler/spatialtext/model"
)

// ErrNoPage is returned for a page index outside the document
var ErrNoPage = errors.New("reader: page not found")

// US Letter, used when a page carries no usable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Reader represents an open PDF file
type Reader struct {
	file   *os.File
	pdf    *pdf.Reader
	config MergeConfig
}

// Open opens a PDF file for token extraction
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultMergeConfig())
}

// OpenWithConfig opens a PDF file with custom glyph merging
func OpenWithConfig(filename string, config MergeConfig) (r *Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reader: failed to open %s: %v", filename, p)
		}
	}()

	f, pr, err := pdf.Open(filename)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("reader: failed to open %s: %w", filename, err)
	}
	return &Reader{file: f, pdf: pr, config: config}, nil
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// NumPages returns the number of pages in the document
func (r *Reader) NumPages() int {
	return r.pdf.NumPage()
}

func (r *Reader) page(index int) (pdf.Page, error) {
	if index < 0 || index >= r.NumPages() {
		return pdf.Page{}, fmt.Errorf("%w: index %d of %d", ErrNoPage, index, r.NumPages())
	}
	p := r.pdf.Page(index + 1)
	if p.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("%w: index %d", ErrNoPage, index)
	}
	return p, nil
}

// PageSize returns the width and height of the page's MediaBox
func (r *Reader) PageSize(index int) (width, height float64, err error) {
	p, err := r.page(index)
	if err != nil {
		return 0, 0, err
	}
	box := mediaBox(p)
	return box.Width, box.Height, nil
}

// PageTokens extracts the word tokens of one page (0-based index)
func (r *Reader) PageTokens(index int) (tokens []model.Token, err error) {
	p, err := r.page(index)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			tokens = nil
			err = fmt.Errorf("reader: malformed content on page %d: %v", index+1, rec)
		}
	}()

	content := p.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
		})
	}

	box := mediaBox(p)
	return MergeGlyphs(glyphs, box.Y+box.Height, r.config), nil
}

// mediaBox returns the page's MediaBox, following Parent inheritance. Y is
// the lower edge in PDF user space.
func mediaBox(p pdf.Page) model.BBox {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		if box, ok := parseBox(v.Key("MediaBox")); ok {
			return box
		}
	}
	return model.NewBBox(0, 0, defaultPageWidth, defaultPageHeight)
}

func parseBox(v pdf.Value) (model.BBox, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return model.BBox{}, false
	}
	var coords [4]float64
	for i := range coords {
		item := v.Index(i)
		switch item.Kind() {
		case pdf.Integer:
			coords[i] = float64(item.Int64())
		case pdf.Real:
			coords[i] = item.Float64()
		default:
			return model.BBox{}, false
		}
	}
	box := model.NewBBoxFromPoints(
		model.Point{X: coords[0], Y: coords[1]},
		model.Point{X: coords[2], Y: coords[3]},
	)
	if box.Width <= 0 || box.Height <= 0 {
		return model.BBox{}, false
	}
	return box, true
}
