package layout

import (
	"math"
	"sort"

	"github.com/tsawler/spatialtext/model"
)

// GroupConfig holds configuration for line grouping
type GroupConfig struct {
	// BucketHeight is the height of one vertical band in source units.
	// Tokens whose VPos falls in the same band form one line (default: 12)
	BucketHeight float64 `yaml:"bucket_height"`
}

// DefaultGroupConfig returns sensible default configuration
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		BucketHeight: 12,
	}
}

// LineGrouper partitions tokens into lines
type LineGrouper struct {
	config GroupConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{
		config: DefaultGroupConfig(),
	}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config GroupConfig) *LineGrouper {
	if config.BucketHeight <= 0 || math.IsNaN(config.BucketHeight) || math.IsInf(config.BucketHeight, 0) {
		config.BucketHeight = DefaultGroupConfig().BucketHeight
	}
	return &LineGrouper{
		config: config,
	}
}

// Config returns the grouper's configuration
func (g *LineGrouper) Config() GroupConfig {
	return g.config
}

// Group partitions tokens into lines ordered top to bottom. Tokens within a
// line are ordered by HPos; ties keep their input order. Input order does not
// otherwise matter, and an empty input yields no lines.
func (g *LineGrouper) Group(tokens []model.Token) []model.Line {
	if len(tokens) == 0 {
		return nil
	}

	buckets := make(map[float64][]model.Token)
	var keys []float64
	for _, t := range tokens {
		key := g.bucketKey(t.VPos)
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], t)
	}
	sort.Float64s(keys)

	lines := make([]model.Line, 0, len(keys))
	for _, key := range keys {
		members := buckets[key]
		sort.SliceStable(members, func(i, j int) bool {
			return model.Finite(members[i].HPos) < model.Finite(members[j].HPos)
		})
		lines = append(lines, model.NewLine(members))
	}

	return lines
}

// bucketKey returns floor(v / BucketHeight) with v sanitized first, so NaN and
// negative positions share bucket 0.
func (g *LineGrouper) bucketKey(v float64) float64 {
	return math.Floor(model.Finite(v) / g.config.BucketHeight)
}
