// Package tables recovers cell structure from blocks the layout classifier
// labelled as tables.
//
// # Detectors
//
// Table extraction is performed by types implementing the [Detector]
// interface. The package provides:
//
//   - [GeometricDetector] - clusters token positions into columns and maps
//     every line to a row
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("geometric")
//	found, err := detector.Detect(blocks)
//
// For a single block, [Extract] is a shortcut:
//
//	if table := tables.Extract(&block, tables.DefaultConfig()); table != nil {
//	    fmt.Print(table.ToMarkdown())
//	}
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//   - MinRows, MinCols - minimum table dimensions
//   - MinConfidence - minimum fraction of tokens aligned to a column (0-1)
//   - ColumnTolerance - distance within which positions share a column
//   - HeaderRow - mark the first row's cells as headers
//   - ClassifiedOnly - only consider blocks labelled as tables
package tables
