// Package alto reads and writes ALTO XML, the layout format produced by
// pdfalto and many OCR engines.
//
// Only the parts needed for positioned text are read: pages, TextBlocks,
// TextLines and String elements with their HPOS, VPOS, WIDTH, HEIGHT and
// CONTENT attributes. Numbers that fail to parse become 0 and Strings with
// empty CONTENT are dropped.
//
//	doc, err := alto.Parse(f)
//	if err != nil {
//	    return err
//	}
//	blocks := doc.Pages[0].Blocks()
package alto

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/spatialtext/model"
)

// ErrNoPage is returned when a requested page does not exist
var ErrNoPage = errors.New("alto: page not found")

// Document is a parsed ALTO file
type Document struct {
	// MeasurementUnit is the unit declared in the Description, if any
	MeasurementUnit string

	// Pages in document order
	Pages []Page
}

// Page is one ALTO Page element
type Page struct {
	ID     string
	Width  float64
	Height float64

	// TextBlocks are the non-empty blocks of the page in document order
	TextBlocks []TextBlock
}

// TextBlock is a run of lines the producer grouped together
type TextBlock struct {
	ID    string
	Lines []TextLine
}

// TextLine holds the tokens of one ALTO TextLine in document order
type TextLine struct {
	ID     string
	Tokens []model.Token
}

// Page returns the page at index (0-based)
func (d *Document) Page(index int) (*Page, error) {
	if index < 0 || index >= len(d.Pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoPage, index+1, len(d.Pages))
	}
	return &d.Pages[index], nil
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Blocks converts the page's TextBlocks into unclassified blocks. Tokens in
// each line are ordered by HPos.
func (p *Page) Blocks() []model.Block {
	blocks := make([]model.Block, 0, len(p.TextBlocks))
	for _, tb := range p.TextBlocks {
		var block model.Block
		for _, tl := range tb.Lines {
			tokens := append([]model.Token(nil), tl.Tokens...)
			sort.SliceStable(tokens, func(i, j int) bool {
				return model.Finite(tokens[i].HPos) < model.Finite(tokens[j].HPos)
			})
			block.Lines = append(block.Lines, model.NewLine(tokens))
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Tokens returns every token on the page in document order
func (p *Page) Tokens() []model.Token {
	var out []model.Token
	for _, tb := range p.TextBlocks {
		for _, tl := range tb.Lines {
			out = append(out, tl.Tokens...)
		}
	}
	return out
}

// TokenCount returns the number of tokens on the page
func (p *Page) TokenCount() int {
	n := 0
	for _, tb := range p.TextBlocks {
		for _, tl := range tb.Lines {
			n += len(tl.Tokens)
		}
	}
	return n
}

// ParseBytes parses an ALTO document held in memory
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}
