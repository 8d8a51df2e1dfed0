// Package format provides input format detection for spatialtext.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// sniffLen is how much of a file is inspected for magic bytes and markup
const sniffLen = 2048

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// ALTO indicates an ALTO XML layout file, such as pdfalto output.
	ALTO
	// HOCR indicates an hOCR file produced by an OCR engine.
	HOCR
	// Image indicates a raster page image for OCR.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case ALTO:
		return "ALTO"
	case HOCR:
		return "hOCR"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case ALTO:
		return ".xml"
	case HOCR:
		return ".hocr"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension. Plain .xml and
// .html files are assumed to be ALTO and hOCR respectively; use
// DetectFromMagic to confirm.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".xml", ".alto":
		return ALTO
	case ".hocr", ".html", ".htm":
		return HOCR
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return Image
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes and leading markup to determine
// format. Returns Unknown if the format cannot be determined.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	if isImageMagic(data) {
		return Image
	}

	return detectMarkup(data)
}

// isImageMagic recognizes the raster formats the ocr package can decode.
func isImageMagic(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true
	case bytes.HasPrefix(data, []byte("GIF8")):
		return true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case bytes.HasPrefix(data, []byte("BM")):
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return true
	}
	return false
}

// detectMarkup tells ALTO XML from hOCR by their characteristic markers.
func detectMarkup(data []byte) Format {
	// Trim leading whitespace and a UTF-8 byte order mark
	data = bytes.TrimPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '<' {
		return Unknown
	}

	lower := bytes.ToLower(data)
	switch {
	case bytes.Contains(lower, []byte("<alto")):
		return ALTO
	case bytes.Contains(lower, []byte("ocr_page")), bytes.Contains(lower, []byte("ocr-system")):
		return HOCR
	}
	return Unknown
}

// DetectFromReader inspects the start of the content to determine format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile combines content and extension detection. Content wins when it
// is recognized.
func DetectFile(filename string, r io.ReaderAt) (Format, error) {
	f, err := DetectFromReader(r)
	if err != nil {
		return Unknown, err
	}
	if f != Unknown {
		return f, nil
	}
	return Detect(filename), nil
}
