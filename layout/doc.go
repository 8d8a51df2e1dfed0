// Package layout turns positioned tokens into classified lines and blocks and
// renders them as flowed text.
//
// The pipeline runs in three steps, each with its own configurable component:
//
//   - [LineGrouper] buckets tokens into lines by vertical position
//   - [Segmenter] splits lines into blocks at large vertical gaps
//   - [Classifier] labels each block as paragraph, table, unknown or empty
//
// The [Analyzer] runs all three:
//
//	analyzer := layout.NewAnalyzer()
//	result := analyzer.Analyze(tokens)
//	for _, b := range result.Blocks {
//	    fmt.Println(b.Classification, b.Text())
//	}
//
// # Flowed Text
//
// [Formatter] produces linear text from classified lines. Vertical gaps
// between lines become 0 to MaxBreaks line breaks; table lines keep
// coordinate-aligned spacing between their tokens:
//
//	text := layout.NewFormatter().FormatBlocks(result.Blocks)
//
// # Configuration
//
// Every component follows the same pattern:
//
//	cfg := layout.DefaultClassifierConfig()
//	cfg.ColumnTolerance = 20
//	classifier := layout.NewClassifierWithConfig(cfg)
//
// Classification is heuristic. Unknown is a normal outcome and renders like a
// paragraph.
package layout
