// Package reader extracts positioned word tokens from PDF files.
//
// PDF text is drawn glyph by glyph with a bottom-left origin. The reader
// merges consecutive glyphs that share a baseline into words and converts
// their positions to the top-left origin used by the rest of the module.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// # Page Access
//
// Pages are addressed by 0-based index:
//
//	tokens, err := r.PageTokens(0)
//
// Malformed content streams can make the underlying parser panic. PageTokens
// recovers and reports those as errors instead.
package reader
