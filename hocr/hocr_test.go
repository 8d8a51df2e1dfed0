package hocr

import (
	"errors"
	"strings"
	"testing"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
    "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title></title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name='ocr-system' content='tesseract 5.3.0' />
 </head>
 <body>
  <div class='ocr_page' id='page_1' title='image "scan.png"; bbox 0 0 2480 3508; ppageno 0'>
   <div class='ocr_carea' id='block_1_1' title="bbox 100 100 900 200">
    <p class='ocr_par' id='par_1_1' title="bbox 100 100 900 200">
     <span class='ocr_line' id='line_1_1' title="bbox 100 100 900 140; baseline 0 -8">
      <span class='ocrx_word' id='word_1_1' title='bbox 300 100 420 140; x_wconf 91'>world</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 100 100 250 140; x_wconf 96'>Hello</span>
     </span>
     <span class='ocr_line' id='line_1_2' title="bbox 100 160 900 200">
      <span class='ocrx_word' id='word_1_3' title='bbox 100 160 260 200'><strong>Second</strong></span>
      <span class='ocrx_word' id='word_1_4' title='bbox 280 160 300 200'> </span>
     </span>
    </p>
   </div>
   <div class='ocr_carea' id='block_1_2' title="bbox 100 400 900 440">
    <p class='ocr_par' id='par_1_2'>
     <span class='ocr_header' id='line_1_3' title="bbox 100 400 900 440">
      <span class='ocrx_word' id='word_1_5' title='bbox 100 400 300 440; x_wconf 88'>Caf&eacute;</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	page := doc.Pages[0]
	if page.ID != "page_1" || page.Number != 1 {
		t.Errorf("unexpected page identity %q #%d", page.ID, page.Number)
	}
	if page.BBox.Width != 2480 || page.BBox.Height != 3508 {
		t.Errorf("unexpected page size %vx%v", page.BBox.Width, page.BBox.Height)
	}
	if len(page.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(page.Paragraphs))
	}

	first := page.Paragraphs[0]
	if len(first.Lines) != 2 {
		t.Fatalf("expected 2 lines in first paragraph, got %d", len(first.Lines))
	}
	// the blank word is skipped
	if got := len(first.Lines[1].Words); got != 1 {
		t.Errorf("expected 1 word on second line, got %d", got)
	}
	if first.Lines[1].Words[0].Text != "Second" {
		t.Errorf("expected nested text to be collected, got %q", first.Lines[1].Words[0].Text)
	}
	if first.Lines[1].Words[0].Confidence != -1 {
		t.Errorf("expected missing confidence to be -1, got %v", first.Lines[1].Words[0].Confidence)
	}

	w := first.Lines[0].Words[1]
	if w.Text != "Hello" || w.Confidence != 96 {
		t.Errorf("unexpected word %+v", w)
	}
	if w.BBox.X != 100 || w.BBox.Y != 100 || w.BBox.Width != 150 || w.BBox.Height != 40 {
		t.Errorf("unexpected word box %+v", w.BBox)
	}

	if got := page.Paragraphs[1].Lines[0].Words[0].Text; got != "Café" {
		t.Errorf("expected entity to be decoded, got %q", got)
	}
}

func TestPageBlocks(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	page := doc.Pages[0]
	blocks := page.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if got := blocks[0].Lines[0].Text(); got != "Hello world" {
		t.Errorf("expected tokens ordered by position, got %q", got)
	}
	if got := len(page.Tokens()); got != 4 {
		t.Errorf("expected 4 tokens, got %d", got)
	}
}

func TestParseLooseWords(t *testing.T) {
	input := `<html><body>
<div class="ocr_page" title="bbox 0 0 100 100">
<span class="ocrx_word" title="bbox 1 2 11 12">alpha</span>
<span class="ocrx_word" title="bbox 20 2 30 12">beta</span>
</div></body></html>`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	page := doc.Pages[0]
	if len(page.Paragraphs) != 1 || len(page.Paragraphs[0].Lines) != 1 {
		t.Fatalf("expected loose words in one implicit line, got %+v", page.Paragraphs)
	}
	if got := len(page.Paragraphs[0].Lines[0].Words); got != 2 {
		t.Errorf("expected 2 words, got %d", got)
	}
}

func TestParseMultiplePages(t *testing.T) {
	input := `<html><body>
<div class="ocr_page" title="bbox 0 0 10 10; ppageno 4"></div>
<div class="ocr_page" title="bbox 0 0 10 10"></div>
</body></html>`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if doc.Pages[0].Number != 5 {
		t.Errorf("expected ppageno to set page number 5, got %d", doc.Pages[0].Number)
	}
	if doc.Pages[1].Number != 2 {
		t.Errorf("expected index based page number 2, got %d", doc.Pages[1].Number)
	}
	if len(doc.Pages[1].Blocks()) != 0 {
		t.Error("expected empty page to have no blocks")
	}
}

func TestParseNoPages(t *testing.T) {
	_, err := Parse(strings.NewReader("<html><body><p>plain</p></body></html>"))
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestParseTitle(t *testing.T) {
	got := ParseTitle(`bbox 100 200 300 400; x_wconf 95; baseline 0 -8`)
	if len(got["bbox"]) != 4 || got["bbox"][2] != "300" {
		t.Errorf("unexpected bbox values %v", got["bbox"])
	}
	if len(got["x_wconf"]) != 1 || got["x_wconf"][0] != "95" {
		t.Errorf("unexpected x_wconf values %v", got["x_wconf"])
	}
	if len(got["baseline"]) != 2 {
		t.Errorf("unexpected baseline values %v", got["baseline"])
	}
}

func TestParseBBox(t *testing.T) {
	tests := []struct {
		title string
		ok    bool
	}{
		{"bbox 1 2 3 4", true},
		{"bbox 1 2 3", false},
		{"bbox a b c d", false},
		{"x_wconf 90", false},
	}
	for _, tt := range tests {
		_, ok := ParseBBox(tt.title)
		if ok != tt.ok {
			t.Errorf("ParseBBox(%q) ok = %v, want %v", tt.title, ok, tt.ok)
		}
	}

	// points are normalized
	box, _ := ParseBBox("bbox 30 40 10 20")
	if box.X != 10 || box.Y != 20 || box.Width != 20 || box.Height != 20 {
		t.Errorf("unexpected normalized box %+v", box)
	}
}
