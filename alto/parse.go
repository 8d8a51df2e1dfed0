package alto

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/spatialtext/model"
)

// parser tracks the open Page, TextBlock and TextLine while streaming
type parser struct {
	doc   *Document
	page  *Page
	block *TextBlock
	line  *TextLine

	inUnit bool
}

// Parse reads an ALTO document. Non-UTF-8 encodings declared in the XML
// prolog are decoded. Strings outside any Page, TextBlock or TextLine are
// collected into implicit ones so loosely structured files still yield
// tokens.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	p := &parser{doc: &Document{}}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("alto: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.start(t)
		case xml.EndElement:
			p.end(t.Name.Local)
		case xml.CharData:
			if p.inUnit {
				p.doc.MeasurementUnit = strings.TrimSpace(string(t))
			}
		}
	}
	p.closePage()

	return p.doc, nil
}

func (p *parser) start(e xml.StartElement) {
	switch e.Name.Local {
	case "MeasurementUnit":
		p.inUnit = true
	case "Page":
		p.closePage()
		p.page = &Page{
			ID:     attr(e, "ID"),
			Width:  number(attr(e, "WIDTH")),
			Height: number(attr(e, "HEIGHT")),
		}
	case "TextBlock":
		p.closeBlock()
		p.ensurePage()
		p.block = &TextBlock{ID: attr(e, "ID")}
	case "TextLine":
		p.closeLine()
		p.ensureBlock()
		p.line = &TextLine{ID: attr(e, "ID")}
	case "String":
		tok, ok := model.NewToken(
			attr(e, "CONTENT"),
			number(attr(e, "HPOS")),
			number(attr(e, "VPOS")),
			number(attr(e, "WIDTH")),
			number(attr(e, "HEIGHT")),
		)
		if !ok {
			return
		}
		p.ensureLine()
		p.line.Tokens = append(p.line.Tokens, tok)
	}
}

func (p *parser) end(name string) {
	switch name {
	case "MeasurementUnit":
		p.inUnit = false
	case "Page":
		p.closePage()
	case "TextBlock":
		p.closeBlock()
	case "TextLine":
		p.closeLine()
	}
}

func (p *parser) ensurePage() {
	if p.page == nil {
		p.page = &Page{}
	}
}

func (p *parser) ensureBlock() {
	p.ensurePage()
	if p.block == nil {
		p.block = &TextBlock{}
	}
}

func (p *parser) ensureLine() {
	p.ensureBlock()
	if p.line == nil {
		p.line = &TextLine{}
	}
}

// closeLine keeps the open line only if it holds tokens
func (p *parser) closeLine() {
	if p.line != nil && len(p.line.Tokens) > 0 && p.block != nil {
		p.block.Lines = append(p.block.Lines, *p.line)
	}
	p.line = nil
}

// closeBlock keeps the open block only if it holds lines
func (p *parser) closeBlock() {
	p.closeLine()
	if p.block != nil && len(p.block.Lines) > 0 && p.page != nil {
		p.page.TextBlocks = append(p.page.TextBlocks, *p.block)
	}
	p.block = nil
}

func (p *parser) closePage() {
	p.closeBlock()
	if p.page != nil {
		p.doc.Pages = append(p.doc.Pages, *p.page)
	}
	p.page = nil
}

// attr returns the value of the named attribute, or ""
func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// number parses a coordinate, returning 0 when it is missing or malformed
func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
