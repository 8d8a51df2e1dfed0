// Package spatialtext reconstructs the visual layout of a page from
// positioned text tokens. Tokens are grouped into lines and blocks, blocks
// are classified as paragraphs or tables, and the page is rendered either as
// flowed text or on a character grid that keeps tokens where they appeared.
//
// Basic usage:
//
//	text, warnings, err := spatialtext.Open("invoice.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", spatialtext.FormatWarnings(warnings))
//	}
//
// With options:
//
//	grid, _, err := spatialtext.Open("scan.hocr").
//	    Page(2).
//	    RawGrid().
//	    GridText()
//
// PDF, ALTO XML, hOCR and page images (with the "ocr" build tag) are
// detected from their content. Tokens that are already in memory go through
// FromTokens or FromBlocks.
package spatialtext

import (
	"github.com/tsawler/spatialtext/format"
	"github.com/tsawler/spatialtext/model"
)

// Open returns an Extractor for the file at filename. The file is read by a
// terminal operation such as Text(); configuration methods only record
// options.
//
// Example:
//
//	text, warnings, err := spatialtext.Open("page_1.xml").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// FromTokens creates an Extractor over tokens of a single page. Empty tokens
// are dropped; order does not matter.
//
// Example:
//
//	text, _, err := spatialtext.FromTokens(tokens).Text()
func FromTokens(tokens []model.Token) *Extractor {
	return &Extractor{
		tokens:   append([]model.Token(nil), tokens...),
		inMemory: true,
		options:  defaultOptions(),
	}
}

// FromBlocks creates an Extractor over one page whose tokens are already
// grouped into blocks, such as ALTO TextBlocks. Block boundaries are kept;
// lines are regrouped within each block.
func FromBlocks(blocks []model.Block) *Extractor {
	return &Extractor{
		blocks:   append([]model.Block(nil), blocks...),
		inMemory: true,
		native:   true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := spatialtext.Must(spatialtext.Open("scan.hocr").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or GridText() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := spatialtext.MustText(spatialtext.Open("page_1.xml").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
