package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	"github.com/tsawler/spatialtext/model"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// WordBox is one recognized word in image pixel coordinates
type WordBox struct {
	Text       string
	Box        image.Rectangle
	Confidence float64

	// Layout position as numbered by the engine
	Block, Paragraph, Line int
}

// Token converts the word box to a token. It reports false for empty text.
func (w WordBox) Token() (model.Token, bool) {
	b := w.Box.Canon()
	return model.NewToken(w.Text, float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
}

// FilterConfidence keeps the words at or above minConfidence
func FilterConfidence(words []WordBox, minConfidence float64) []WordBox {
	out := words[:0:0]
	for _, w := range words {
		if w.Confidence >= minConfidence {
			out = append(out, w)
		}
	}
	return out
}

// WordTokens converts word boxes to tokens, dropping empty words
func WordTokens(words []WordBox) []model.Token {
	tokens := make([]model.Token, 0, len(words))
	for _, w := range words {
		if tok, ok := w.Token(); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// WordBlocks groups word boxes into blocks using the engine's paragraph and
// line numbering. Blocks follow paragraph order; tokens within a line are
// ordered by HPos.
func WordBlocks(words []WordBox) []model.Block {
	type lineKey struct{ block, par, line int }
	type parKey struct{ block, par int }

	lines := make(map[lineKey][]model.Token)
	var lineOrder []lineKey
	for _, w := range words {
		tok, ok := w.Token()
		if !ok {
			continue
		}
		k := lineKey{w.Block, w.Paragraph, w.Line}
		if _, seen := lines[k]; !seen {
			lineOrder = append(lineOrder, k)
		}
		lines[k] = append(lines[k], tok)
	}

	sort.SliceStable(lineOrder, func(i, j int) bool {
		a, b := lineOrder[i], lineOrder[j]
		if a.block != b.block {
			return a.block < b.block
		}
		if a.par != b.par {
			return a.par < b.par
		}
		return a.line < b.line
	})

	var blocks []model.Block
	var current parKey
	for i, k := range lineOrder {
		tokens := lines[k]
		sort.SliceStable(tokens, func(a, b int) bool {
			return tokens[a].HPos < tokens[b].HPos
		})
		pk := parKey{k.block, k.par}
		if i == 0 || pk != current {
			blocks = append(blocks, model.Block{})
			current = pk
		}
		last := &blocks[len(blocks)-1]
		last.Lines = append(last.Lines, model.NewLine(tokens))
	}
	return blocks
}

// ImageSize returns the pixel dimensions of an encoded image. PNG, JPEG,
// GIF, TIFF, BMP and WebP are recognized.
func ImageSize(imageData []byte) (width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0, fmt.Errorf("ocr: reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("ocr: %s image has no pixels", format)
	}
	return cfg.Width, cfg.Height, nil
}
