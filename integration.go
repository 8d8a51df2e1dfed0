// integration.go runs the layout analysis over every page of a document
package spatialtext

import (
	"fmt"

	"github.com/tsawler/spatialtext/config"
	"github.com/tsawler/spatialtext/layout"
)

// PageAnalysis is the analysis of one page of a document
type PageAnalysis struct {
	// Number is the 1-indexed page number
	Number int

	*layout.AnalysisResult
}

// AnalyzeDocument performs layout analysis on all pages of a document.
//
// Example:
//
//	pages, err := spatialtext.AnalyzeDocument("scan.hocr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range pages {
//	    fmt.Printf("Page %d: %d tables, %d paragraphs\n",
//	        p.Number, p.Summary.Tables, p.Summary.Paragraphs)
//	}
func AnalyzeDocument(path string) ([]PageAnalysis, error) {
	return AnalyzeDocumentWithConfig(path, config.Default())
}

// AnalyzeDocumentWithConfig performs layout analysis with custom configuration
func AnalyzeDocumentWithConfig(path string, cfg config.Config) ([]PageAnalysis, error) {
	ext := Open(path).WithConfig(cfg)
	count, err := ext.PageCount()
	if err != nil {
		return nil, err
	}

	pages := make([]PageAnalysis, 0, count)
	for n := 1; n <= count; n++ {
		result, err := ext.Page(n).Analyze()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		pages = append(pages, PageAnalysis{Number: n, AnalysisResult: result})
	}
	return pages, nil
}
