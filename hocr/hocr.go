// Package hocr reads word positions from hOCR, the HTML output format of
// Tesseract and other OCR engines.
//
// Every ocrx_word becomes a token whose position comes from the word's
// "bbox x1 y1 x2 y2" title property. Words are grouped by their enclosing
// ocr_par (or ocr_carea) and line elements:
//
//	doc, err := hocr.Parse(f)
//	if err != nil {
//	    return err
//	}
//	for _, page := range doc.Pages {
//	    blocks := page.Blocks()
//	    ...
//	}
package hocr

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/spatialtext/model"
)

// ErrNoPages is returned when a document holds no ocr_page element
var ErrNoPages = errors.New("hocr: no ocr_page elements found")

// Document is a parsed hOCR file
type Document struct {
	Pages []Page
}

// Page is one ocr_page element
type Page struct {
	ID     string
	Number int
	BBox   model.BBox

	// Paragraphs in document order. Words outside any paragraph are
	// collected into their own paragraph.
	Paragraphs []Paragraph
}

// Paragraph is an ocr_par or ocr_carea element
type Paragraph struct {
	ID    string
	Lines []Line
}

// Line is an ocr_line or similar line element
type Line struct {
	ID    string
	Words []Word
}

// Word is one recognized word
type Word struct {
	ID   string
	Text string
	BBox model.BBox

	// Confidence is the engine's x_wconf value (0-100), or -1 if absent
	Confidence float64
}

// Token converts the word to a token. It reports false for empty text.
func (w Word) Token() (model.Token, bool) {
	return model.NewToken(w.Text, w.BBox.X, w.BBox.Y, w.BBox.Width, w.BBox.Height)
}

// Tokens returns every word on the page as a token, in document order
func (p *Page) Tokens() []model.Token {
	var out []model.Token
	for _, par := range p.Paragraphs {
		for _, line := range par.Lines {
			for _, w := range line.Words {
				if tok, ok := w.Token(); ok {
					out = append(out, tok)
				}
			}
		}
	}
	return out
}

// Blocks converts each paragraph into an unclassified block. Tokens within a
// line are ordered by HPos.
func (p *Page) Blocks() []model.Block {
	var blocks []model.Block
	for _, par := range p.Paragraphs {
		var block model.Block
		for _, line := range par.Lines {
			var tokens []model.Token
			for _, w := range line.Words {
				if tok, ok := w.Token(); ok {
					tokens = append(tokens, tok)
				}
			}
			if len(tokens) == 0 {
				continue
			}
			sort.SliceStable(tokens, func(i, j int) bool {
				return tokens[i].HPos < tokens[j].HPos
			})
			block.Lines = append(block.Lines, model.NewLine(tokens))
		}
		if len(block.Lines) > 0 {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(strings.TrimSpace(part))
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBBox extracts the bbox property of a title as a top-left origin box
func ParseBBox(title string) (model.BBox, bool) {
	values, ok := ParseTitle(title)["bbox"]
	if !ok || len(values) < 4 {
		return model.BBox{}, false
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			return model.BBox{}, false
		}
		coords[i] = v
	}
	return model.NewBBoxFromPoints(
		model.Point{X: coords[0], Y: coords[1]},
		model.Point{X: coords[2], Y: coords[3]},
	), true
}
