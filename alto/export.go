package alto

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/spatialtext/model"
)

// Namespace is the ALTO v3 namespace written by Export
const Namespace = "http://www.loc.gov/standards/alto/ns-v3#"

type xmlAlto struct {
	XMLName     xml.Name       `xml:"alto"`
	Xmlns       string         `xml:"xmlns,attr"`
	Description xmlDescription `xml:"Description"`
	Layout      xmlLayout      `xml:"Layout"`
}

type xmlDescription struct {
	MeasurementUnit string `xml:"MeasurementUnit,omitempty"`
}

type xmlLayout struct {
	Pages []xmlPage `xml:"Page"`
}

type xmlPage struct {
	ID         string        `xml:"ID,attr"`
	Width      string        `xml:"WIDTH,attr,omitempty"`
	Height     string        `xml:"HEIGHT,attr,omitempty"`
	PrintSpace xmlPrintSpace `xml:"PrintSpace"`
}

type xmlPrintSpace struct {
	Blocks []xmlBlock `xml:"TextBlock"`
}

type xmlBlock struct {
	ID     string    `xml:"ID,attr"`
	HPos   string    `xml:"HPOS,attr"`
	VPos   string    `xml:"VPOS,attr"`
	Width  string    `xml:"WIDTH,attr"`
	Height string    `xml:"HEIGHT,attr"`
	Lines  []xmlLine `xml:"TextLine"`
}

type xmlLine struct {
	ID      string      `xml:"ID,attr"`
	HPos    string      `xml:"HPOS,attr"`
	VPos    string      `xml:"VPOS,attr"`
	Width   string      `xml:"WIDTH,attr"`
	Height  string      `xml:"HEIGHT,attr"`
	Strings []xmlString `xml:"String"`
}

type xmlString struct {
	ID      string `xml:"ID,attr"`
	Content string `xml:"CONTENT,attr"`
	HPos    string `xml:"HPOS,attr"`
	VPos    string `xml:"VPOS,attr"`
	Width   string `xml:"WIDTH,attr"`
	Height  string `xml:"HEIGHT,attr"`
}

// NewPage builds a page from blocks so it can be exported. Empty lines and
// blocks are skipped.
func NewPage(id string, width, height float64, blocks []model.Block) Page {
	page := Page{ID: id, Width: width, Height: height}
	for bi, b := range blocks {
		tb := TextBlock{ID: fmt.Sprintf("%s_B%d", id, bi+1)}
		for li, l := range b.Lines {
			if len(l.Tokens) == 0 {
				continue
			}
			tb.Lines = append(tb.Lines, TextLine{
				ID:     fmt.Sprintf("%s_L%d", tb.ID, li+1),
				Tokens: append([]model.Token(nil), l.Tokens...),
			})
		}
		if len(tb.Lines) > 0 {
			page.TextBlocks = append(page.TextBlocks, tb)
		}
	}
	return page
}

// Export writes doc as indented ALTO XML
func Export(w io.Writer, doc *Document) error {
	out := xmlAlto{
		Xmlns:       Namespace,
		Description: xmlDescription{MeasurementUnit: doc.MeasurementUnit},
	}

	for pi, p := range doc.Pages {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("Page%d", pi+1)
		}
		xp := xmlPage{ID: id}
		if p.Width > 0 {
			xp.Width = formatNumber(p.Width)
		}
		if p.Height > 0 {
			xp.Height = formatNumber(p.Height)
		}

		for bi, tb := range p.TextBlocks {
			xb := xmlBlock{ID: orDefault(tb.ID, fmt.Sprintf("%s_B%d", id, bi+1))}
			var blockBox model.BBox
			for li, tl := range tb.Lines {
				xl := xmlLine{ID: orDefault(tl.ID, fmt.Sprintf("%s_L%d", xb.ID, li+1))}
				var lineBox model.BBox
				for si, t := range tl.Tokens {
					xl.Strings = append(xl.Strings, xmlString{
						ID:      fmt.Sprintf("%s_S%d", xl.ID, si+1),
						Content: t.Content,
						HPos:    formatNumber(t.HPos),
						VPos:    formatNumber(t.VPos),
						Width:   formatNumber(t.Width),
						Height:  formatNumber(t.Height),
					})
					lineBox = unionBox(lineBox, t.BBox(), si == 0)
				}
				setBox(&xl.HPos, &xl.VPos, &xl.Width, &xl.Height, lineBox)
				blockBox = unionBox(blockBox, lineBox, li == 0)
				xb.Lines = append(xb.Lines, xl)
			}
			setBox(&xb.HPos, &xb.VPos, &xb.Width, &xb.Height, blockBox)
			xp.PrintSpace.Blocks = append(xp.PrintSpace.Blocks, xb)
		}
		out.Layout.Pages = append(out.Layout.Pages, xp)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("alto: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("alto: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("alto: %w", err)
	}
	return nil
}

func unionBox(acc, box model.BBox, first bool) model.BBox {
	if first {
		return box
	}
	return acc.Union(box)
}

func setBox(h, v, w, ht *string, box model.BBox) {
	*h = formatNumber(box.X)
	*v = formatNumber(box.Y)
	*w = formatNumber(box.Width)
	*ht = formatNumber(box.Height)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(model.Finite(v), 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
