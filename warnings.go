package spatialtext

import (
	"fmt"
	"strings"

	"github.com/tsawler/spatialtext/grid"
)

// WarningCode identifies the kind of a non-fatal issue
type WarningCode int

const (
	// WarnEmptyPage means the page held no tokens
	WarnEmptyPage WarningCode = iota + 1
	// WarnDroppedRunes means characters fell outside the grid
	WarnDroppedRunes
	// WarnCollisions means characters were not placed because their cells
	// were already taken
	WarnCollisions
	// WarnTruncatedBlocks means blocks ran past the last grid row
	WarnTruncatedBlocks
	// WarnLowConfidence means OCR words were discarded for low confidence
	WarnLowConfidence
)

// String returns a short name for the code
func (c WarningCode) String() string {
	switch c {
	case WarnEmptyPage:
		return "empty-page"
	case WarnDroppedRunes:
		return "dropped-runes"
	case WarnCollisions:
		return "collisions"
	case WarnTruncatedBlocks:
		return "truncated-blocks"
	case WarnLowConfidence:
		return "low-confidence"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue found while processing a page. Processing
// succeeded but the result may be imperfect.
type Warning struct {
	Code    WarningCode
	Page    int
	Count   int
	Message string
}

// String formats the warning with its page
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into one line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// placementWarnings describes the losses of a grid placement
func placementWarnings(page int, r grid.PlaceReport) []Warning {
	var out []Warning
	if r.Dropped > 0 {
		out = append(out, Warning{
			Code:    WarnDroppedRunes,
			Page:    page,
			Count:   r.Dropped,
			Message: fmt.Sprintf("%d characters fell outside the grid", r.Dropped),
		})
	}
	if r.Collisions > 0 {
		out = append(out, Warning{
			Code:    WarnCollisions,
			Page:    page,
			Count:   r.Collisions,
			Message: fmt.Sprintf("%d characters collided with earlier text", r.Collisions),
		})
	}
	if r.TruncatedBlocks > 0 {
		out = append(out, Warning{
			Code:    WarnTruncatedBlocks,
			Page:    page,
			Count:   r.TruncatedBlocks,
			Message: fmt.Sprintf("%d blocks were cut off at the bottom of the grid", r.TruncatedBlocks),
		})
	}
	return out
}
