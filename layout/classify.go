package layout

import (
	"github.com/tsawler/spatialtext/model"
)

// ClassifierConfig holds the thresholds of the block classification rule
type ClassifierConfig struct {
	// ColumnTolerance is the maximum distance between a token's HPos and a
	// column bin centroid for the token to join that bin (default: 40)
	ColumnTolerance float64 `yaml:"column_tolerance"`

	// BigGap is the right-edge gap above which a line counts as having a
	// big gap (default: 50)
	BigGap float64 `yaml:"big_gap"`

	// TableGapRatio is the big-gap line fraction a multi-column block must
	// exceed to be a table (default: 0.25)
	TableGapRatio float64 `yaml:"table_gap_ratio"`

	// MaxMarginVariance is the left-margin variance below which a block may
	// be a paragraph (default: 20)
	MaxMarginVariance float64 `yaml:"max_margin_variance"`

	// MinParagraphWidth is the average content width above which a block may
	// be a paragraph (default: 200)
	MinParagraphWidth float64 `yaml:"min_paragraph_width"`
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ColumnTolerance:   40,
		BigGap:            50,
		TableGapRatio:     0.25,
		MaxMarginVariance: 20,
		MinParagraphWidth: 200,
	}
}

// Result is a block's label and the measurements behind it
type Result struct {
	Classification model.Classification
	Metrics        model.Metrics
}

// Classifier labels blocks as paragraph, table, unknown or empty
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return &Classifier{
		config: DefaultClassifierConfig(),
	}
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{
		config: config,
	}
}

// Classify measures the block, stores the label and metrics on it, and sets
// IsTable on its lines when the block is a table. The rules are applied in
// order and the first match wins:
//
//  1. no lines: empty
//  2. two or more column bins and a big-gap ratio above TableGapRatio: table
//  3. margin variance below MaxMarginVariance and average width above
//     MinParagraphWidth: paragraph
//  4. otherwise: unknown
func (c *Classifier) Classify(block *model.Block) Result {
	if block == nil || len(block.Lines) == 0 {
		if block != nil {
			block.Classification = model.ClassEmpty
			block.Metrics = model.Metrics{}
		}
		return Result{Classification: model.ClassEmpty}
	}

	lefts, widths := lineMargins(block.Lines)
	bins := binColumns(block.Lines, c.config.ColumnTolerance)

	metrics := model.Metrics{
		LeftMarginMean:     mean(lefts),
		LeftMarginVariance: variance(lefts),
		AvgContentWidth:    mean(widths),
		ColumnBins:         bins.centroids,
		BigGapRatio:        bigGapRatio(block.Lines, c.config.BigGap),
		AlignmentScore:     bins.alignmentScore(),
	}

	var label model.Classification
	switch {
	case metrics.MultiColumn() && metrics.BigGapRatio > c.config.TableGapRatio:
		label = model.ClassTable
	case metrics.LeftMarginVariance < c.config.MaxMarginVariance &&
		metrics.AvgContentWidth > c.config.MinParagraphWidth:
		label = model.ClassParagraph
	default:
		label = model.ClassUnknown
	}

	block.Classification = label
	block.Metrics = metrics
	for i := range block.Lines {
		block.Lines[i].IsTable = label == model.ClassTable
	}

	return Result{Classification: label, Metrics: metrics}
}

// ClassifyAll classifies every block in place
func (c *Classifier) ClassifyAll(blocks []model.Block) {
	for i := range blocks {
		c.Classify(&blocks[i])
	}
}

// PageSummary counts block labels across a page
type PageSummary struct {
	Blocks     int
	Tables     int
	Paragraphs int
	Unknown    int
	Empty      int

	// MultiColumn counts non-table blocks that have several column bins and
	// at least one line with a big gap
	MultiColumn int
}

// Summarize counts the labels of already classified blocks
func Summarize(blocks []model.Block) PageSummary {
	var s PageSummary
	for _, b := range blocks {
		s.Blocks++
		switch b.Classification {
		case model.ClassTable:
			s.Tables++
			continue
		case model.ClassParagraph:
			s.Paragraphs++
		case model.ClassEmpty:
			s.Empty++
		default:
			s.Unknown++
		}
		if b.Metrics.MultiColumn() && b.Metrics.BigGapRatio > 0 {
			s.MultiColumn++
		}
	}
	return s
}

// PreferRaw reports whether the page should be placed by raw coordinates
// rather than by flow, which is the case when it holds tables or side by
// side regions.
func (s PageSummary) PreferRaw() bool {
	return s.Tables > 0 || s.MultiColumn > 0
}
