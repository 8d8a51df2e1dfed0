package layout

import (
	"math"

	"github.com/tsawler/spatialtext/model"
)

// SegmentConfig holds configuration for block segmentation
type SegmentConfig struct {
	// ParagraphGap is the AvgVPos distance between successive lines above
	// which a new block starts (default: 20)
	ParagraphGap float64 `yaml:"paragraph_gap"`
}

// DefaultSegmentConfig returns sensible default configuration
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		ParagraphGap: 20,
	}
}

// Segmenter splits a page's lines into blocks. It is used for sources that
// carry no native block structure.
type Segmenter struct {
	config SegmentConfig
}

// NewSegmenter creates a segmenter with default configuration
func NewSegmenter() *Segmenter {
	return &Segmenter{
		config: DefaultSegmentConfig(),
	}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration
func NewSegmenterWithConfig(config SegmentConfig) *Segmenter {
	return &Segmenter{
		config: config,
	}
}

// Segment groups lines (ordered top to bottom) into blocks. The returned
// blocks are unclassified.
func (s *Segmenter) Segment(lines []model.Line) []model.Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []model.Block
	current := model.Block{Lines: []model.Line{lines[0]}}

	for i := 1; i < len(lines); i++ {
		gap := lines[i].AvgVPos - lines[i-1].AvgVPos
		if math.Abs(gap) > s.config.ParagraphGap {
			blocks = append(blocks, current)
			current = model.Block{}
		}
		current.Lines = append(current.Lines, lines[i])
	}

	return append(blocks, current)
}
