// Command spatialtext prints the reconstructed layout of one page of a PDF,
// ALTO XML, hOCR or image file.
//
// Usage:
//
//	spatialtext -in invoice.pdf -page 1 -mode grid
//	spatialtext -in page.xml -mode grid -view 0,10,100,40
//	spatialtext -in scan.hocr -mode tables
//	spatialtext -in scan.hocr -mode csv > tables.csv
//
// Settings may also come from a .env file: SPATIALTEXT_CONFIG names a YAML
// configuration file and SPATIALTEXT_PDFALTO a pdfalto binary.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tsawler/spatialtext"
	"github.com/tsawler/spatialtext/config"
	"github.com/tsawler/spatialtext/grid"
	"github.com/tsawler/spatialtext/model"
)

type view struct {
	x, y, w, h int
}

// parseView parses "x,y,w,h"
func parseView(s string) (view, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return view{}, fmt.Errorf("view must be x,y,w,h, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return view{}, fmt.Errorf("view: %w", err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return view{}, fmt.Errorf("view width and height must be positive")
	}
	return view{x: v[0], y: v[1], w: v[2], h: v[3]}, nil
}

// writeTables prints each table as markdown, or as CSV separated by blank
// lines when csv is set.
func writeTables(w io.Writer, tables []*model.Table, csv bool) {
	for i, t := range tables {
		if csv {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, t.ToCSV())
			continue
		}
		fmt.Fprintf(w, "Table %d (%dx%d):\n", i+1, t.RowCount(), t.ColCount())
		fmt.Fprintln(w, t.ToMarkdown())
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	inPath := flag.String("in", "", "Path to the input file (required)")
	page := flag.Int("page", 1, "Page number (1-indexed)")
	mode := flag.String("mode", "flow", "Output: flow, grid, blocks, tables, csv or alto")
	policy := flag.String("policy", "", "Grid placement: auto, raw or flowed (default from config)")
	configPath := flag.String("config", os.Getenv("SPATIALTEXT_CONFIG"), "Path to a YAML configuration file")
	pdfaltoPath := flag.String("pdfalto", os.Getenv("SPATIALTEXT_PDFALTO"), "Convert PDFs with this pdfalto binary")
	viewSpec := flag.String("view", "", "Print only the grid window x,y,w,h")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -in flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *policy != "" {
		p, err := grid.ParsePolicy(*policy)
		if err != nil {
			log.Fatalf("Invalid -policy: %v", err)
		}
		cfg.Grid.Policy = p
	}

	ext := spatialtext.Open(*inPath).Page(*page).WithConfig(cfg)
	if *pdfaltoPath != "" {
		ext = ext.PdfaltoBinary(*pdfaltoPath)
	}

	var warnings []spatialtext.Warning
	var err error

	switch *mode {
	case "flow":
		var text string
		text, warnings, err = ext.Text()
		if err == nil {
			fmt.Println(text)
		}

	case "grid":
		if *viewSpec != "" {
			v, verr := parseView(*viewSpec)
			if verr != nil {
				log.Fatalf("Invalid -view: %v", verr)
			}
			s, w, serr := ext.ViewSize(v.w, v.h).Session()
			warnings, err = w, serr
			if err == nil {
				s.ScrollTo(v.x, v.y)
				fmt.Println(s.ViewportText())
			}
			break
		}
		var text string
		text, warnings, err = ext.GridText()
		if err == nil {
			fmt.Println(text)
		}

	case "blocks":
		blocks, berr := ext.Blocks()
		err = berr
		for i, b := range blocks {
			fmt.Printf("--- block %d: %s (%d lines) ---\n", i+1, b.Classification, len(b.Lines))
			fmt.Println(b.Text())
		}

	case "tables", "csv":
		tables, terr := ext.Tables()
		err = terr
		writeTables(os.Stdout, tables, *mode == "csv")

	case "alto":
		warnings, err = ext.WriteALTO(os.Stdout)

	default:
		log.Fatalf("Unknown -mode %q", *mode)
	}

	if err != nil {
		log.Fatalf("Failed to process %s: %v", *inPath, err)
	}
	if len(warnings) > 0 {
		log.Printf("Warnings: %s", spatialtext.FormatWarnings(warnings))
	}
}
