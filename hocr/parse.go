package hocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// lineClasses are the hOCR classes that start a new line
var lineClasses = []string{"ocr_line", "ocrx_line", "ocr_caption", "ocr_header", "ocr_textfloat"}

// Parse reads an hOCR document. The character encoding is taken from the
// document's meta tags and converted to UTF-8.
func Parse(r io.Reader) (*Document, error) {
	utf8Reader, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("hocr: detecting charset: %w", err)
	}

	root, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("hocr: %w", err)
	}

	doc := &Document{}
	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			doc.Pages = append(doc.Pages, parsePage(n, len(doc.Pages)))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(root)

	if len(doc.Pages) == 0 {
		return nil, ErrNoPages
	}
	return doc, nil
}

// pageBuilder collects words while walking one page
type pageBuilder struct {
	page *Page
	par  *Paragraph
	line *Line
}

func parsePage(n *html.Node, index int) Page {
	title := getAttr(n, "title")
	page := Page{ID: getAttr(n, "id"), Number: index + 1}
	if bbox, ok := ParseBBox(title); ok {
		page.BBox = bbox
	}
	if v, ok := ParseTitle(title)["ppageno"]; ok && len(v) > 0 {
		if num, err := strconv.Atoi(v[0]); err == nil {
			page.Number = num + 1
		}
	}

	b := &pageBuilder{page: &page}
	b.walk(n)
	b.closePar()
	return page
}

func (b *pageBuilder) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch {
		case hasClass(c, "ocrx_word"):
			b.addWord(c)
		case hasClass(c, "ocr_par"), hasClass(c, "ocr_carea") && b.par == nil:
			b.closePar()
			b.par = &Paragraph{ID: getAttr(c, "id")}
			b.walk(c)
			b.closePar()
		case hasAnyClass(c, lineClasses):
			b.closeLine()
			b.line = &Line{ID: getAttr(c, "id")}
			b.walk(c)
			b.closeLine()
		default:
			b.walk(c)
		}
	}
}

func (b *pageBuilder) addWord(n *html.Node) {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return
	}
	title := getAttr(n, "title")
	bbox, _ := ParseBBox(title)
	conf := -1.0
	if v, ok := ParseTitle(title)["x_wconf"]; ok && len(v) > 0 {
		if f, err := strconv.ParseFloat(v[0], 64); err == nil {
			conf = f
		}
	}

	if b.par == nil {
		b.par = &Paragraph{}
	}
	if b.line == nil {
		b.line = &Line{}
	}
	b.line.Words = append(b.line.Words, Word{
		ID:         getAttr(n, "id"),
		Text:       text,
		BBox:       bbox,
		Confidence: conf,
	})
}

func (b *pageBuilder) closeLine() {
	if b.line != nil && len(b.line.Words) > 0 {
		if b.par == nil {
			b.par = &Paragraph{}
		}
		b.par.Lines = append(b.par.Lines, *b.line)
	}
	b.line = nil
}

func (b *pageBuilder) closePar() {
	b.closeLine()
	if b.par != nil && len(b.par.Lines) > 0 {
		b.page.Paragraphs = append(b.page.Paragraphs, *b.par)
	}
	b.par = nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, c := range classes {
		if hasClass(n, c) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
