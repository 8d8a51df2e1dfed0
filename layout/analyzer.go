package layout

import (
	"github.com/tsawler/spatialtext/model"
)

// AnalyzerConfig holds configuration for every stage of the analyzer
type AnalyzerConfig struct {
	Group      GroupConfig      `yaml:"group"`
	Segment    SegmentConfig    `yaml:"segment"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// DefaultAnalyzerConfig returns the default configuration of each stage
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Group:      DefaultGroupConfig(),
		Segment:    DefaultSegmentConfig(),
		Classifier: DefaultClassifierConfig(),
	}
}

// AnalysisResult holds the lines and classified blocks of one page
type AnalysisResult struct {
	// Lines are all lines of the page, top to bottom
	Lines []model.Line

	// Blocks are the classified blocks, top to bottom
	Blocks []model.Block

	// Summary counts the block labels
	Summary PageSummary
}

// Analyzer runs grouping, segmentation and classification
type Analyzer struct {
	config     AnalyzerConfig
	grouper    *LineGrouper
	segmenter  *Segmenter
	classifier *Classifier
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:     config,
		grouper:    NewLineGrouperWithConfig(config.Group),
		segmenter:  NewSegmenterWithConfig(config.Segment),
		classifier: NewClassifierWithConfig(config.Classifier),
	}
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Analyze groups tokens into lines, splits the lines into blocks and
// classifies each block. An empty token list yields an empty result.
func (a *Analyzer) Analyze(tokens []model.Token) *AnalysisResult {
	lines := a.grouper.Group(tokens)
	blocks := a.segmenter.Segment(lines)
	return a.finish(blocks)
}

// AnalyzeBlocks regroups and classifies blocks that came with native block
// structure, such as ALTO TextBlocks. Lines are rebuilt from each block's
// tokens so every block obeys the same grouping rule; blocks left without
// tokens are kept and classified as empty.
func (a *Analyzer) AnalyzeBlocks(blocks []model.Block) *AnalysisResult {
	out := make([]model.Block, len(blocks))
	for i := range blocks {
		out[i] = model.Block{Lines: a.grouper.Group(blocks[i].Tokens())}
	}
	return a.finish(out)
}

func (a *Analyzer) finish(blocks []model.Block) *AnalysisResult {
	a.classifier.ClassifyAll(blocks)

	var lines []model.Line
	for _, b := range blocks {
		lines = append(lines, b.Lines...)
	}

	return &AnalysisResult{
		Lines:   lines,
		Blocks:  blocks,
		Summary: Summarize(blocks),
	}
}
