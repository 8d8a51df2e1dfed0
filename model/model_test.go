package model

import (
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Geometry Tests
// ============================================================================

func TestNewBBoxFromPoints(t *testing.T) {
	got := NewBBoxFromPoints(Point{50, 70}, Point{10, 20})
	want := BBox{10, 20, 40, 50}
	if got != want {
		t.Errorf("NewBBoxFromPoints() = %+v, want %+v", got, want)
	}
}

func TestBBoxEdgesTopLeftOrigin(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 || bbox.Right() != 110 {
		t.Errorf("Left/Right = %f/%f, want 10/110", bbox.Left(), bbox.Right())
	}
	if bbox.Top() != 20 || bbox.Bottom() != 70 {
		t.Errorf("Top/Bottom = %f/%f, want 20/70", bbox.Top(), bbox.Bottom())
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	c := NewBBox(50, 50, 1, 1)

	if u := a.Union(c); u != (BBox{0, 0, 51, 51}) {
		t.Errorf("Union() = %+v, want {0 0 51 51}", u)
	}
	if u := c.Union(a); u != (BBox{0, 0, 51, 51}) {
		t.Errorf("Union() reversed = %+v, want {0 0 51 51}", u)
	}
}

// ============================================================================
// Token Tests
// ============================================================================

func TestNewToken_DropsEmptyContent(t *testing.T) {
	if _, ok := NewToken("", 1, 2, 3, 4); ok {
		t.Error("expected empty content to be rejected")
	}

	tok, ok := NewToken("CITY", 160.8, 84.8, 26.4, 10.6)
	if !ok {
		t.Fatal("expected token to be accepted")
	}
	if math.Abs(tok.Right()-187.2) > 1e-9 {
		t.Errorf("Right() = %f, want 187.2", tok.Right())
	}
	if math.Abs(tok.Bottom()-95.4) > 1e-9 {
		t.Errorf("Bottom() = %f, want 95.4", tok.Bottom())
	}
}

func TestNewToken_NormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent
	tok, ok := NewToken("é", 0, 0, 5, 10)
	if !ok {
		t.Fatal("expected token to be accepted")
	}
	if tok.Content != "\u00e9" {
		t.Errorf("Content = %q, want precomposed %q", tok.Content, "\u00e9")
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"positive", 12.5, 12.5},
		{"negative", -3, 0},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), math.MaxFloat32},
		{"-Inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.in); got != tt.want {
				t.Errorf("Finite(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenStore(t *testing.T) {
	store := NewTokenStore()
	if store.Len() != 0 {
		t.Fatalf("new store Len() = %d, want 0", store.Len())
	}

	if !store.Add("CITY", 160.8, 84.8, 26.4, 10.6) {
		t.Error("Add(CITY) should succeed")
	}
	if store.Add("", 0, 0, 0, 0) {
		t.Error("Add(empty) should be dropped")
	}
	store.Add("CASH", 189.8, 84.8, 29.3, 10.6)

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	tokens := store.Tokens()
	tokens[0].Content = "mutated"
	if store.Tokens()[0].Content != "CITY" {
		t.Error("Tokens() must return a copy")
	}

	right, bottom := store.Bounds()
	if math.Abs(right-219.1) > 1e-9 || math.Abs(bottom-95.4) > 1e-9 {
		t.Errorf("Bounds() = %f,%f, want 219.1,95.4", right, bottom)
	}

	store.Reset()
	if store.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", store.Len())
	}
}

func TestNewTokenStoreFrom_DropsEmpty(t *testing.T) {
	store := NewTokenStoreFrom([]Token{{Content: "a"}, {Content: ""}, {Content: "b"}})
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestTokenBounds_SanitizesNonFinite(t *testing.T) {
	tokens := []Token{
		{Content: "x", HPos: math.NaN(), VPos: -10, Width: 5, Height: 5},
	}
	right, bottom := TokenBounds(tokens)
	if right != 5 || bottom != 5 {
		t.Errorf("TokenBounds() = %f,%f, want 5,5", right, bottom)
	}
}

// ============================================================================
// Classification Tests
// ============================================================================

func TestClassification_String(t *testing.T) {
	tests := []struct {
		c    Classification
		want string
	}{
		{ClassEmpty, "empty"},
		{ClassParagraph, "paragraph"},
		{ClassTable, "table"},
		{ClassUnknown, "unknown"},
		{Classification(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Classification(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseClassification(t *testing.T) {
	for _, c := range []Classification{ClassEmpty, ClassParagraph, ClassTable, ClassUnknown} {
		got, err := ParseClassification(strings.ToUpper(c.String()))
		if err != nil {
			t.Errorf("ParseClassification(%q) error: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseClassification(%q) = %v, want %v", c.String(), got, c)
		}
	}

	if _, err := ParseClassification("heading"); err == nil {
		t.Error("expected error for unsupported label")
	}
}

func TestClassification_TextMarshaling(t *testing.T) {
	b, err := ClassTable.MarshalText()
	if err != nil || string(b) != "table" {
		t.Fatalf("MarshalText() = %q, %v", b, err)
	}

	var c Classification
	if err := c.UnmarshalText([]byte("paragraph")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if c != ClassParagraph {
		t.Errorf("UnmarshalText() = %v, want paragraph", c)
	}
}

// ============================================================================
// Line and Block Tests
// ============================================================================

func TestNewLine(t *testing.T) {
	line := NewLine([]Token{
		{Content: "CITY", HPos: 160.8, VPos: 84, Width: 26.4, Height: 10.6},
		{Content: "CASH", HPos: 189.8, VPos: 86, Width: 29.3, Height: 10.6},
	})

	if line.AvgVPos != 85 {
		t.Errorf("AvgVPos = %f, want 85", line.AvgVPos)
	}
	if line.Left() != 160.8 {
		t.Errorf("Left() = %f, want 160.8", line.Left())
	}
	if math.Abs(line.Right()-219.1) > 1e-9 {
		t.Errorf("Right() = %f, want 219.1", line.Right())
	}
	if line.Text() != "CITY CASH" {
		t.Errorf("Text() = %q, want %q", line.Text(), "CITY CASH")
	}
}

func TestEmptyLine(t *testing.T) {
	line := NewLine(nil)
	if line.Left() != 0 || line.Right() != 0 || line.Text() != "" {
		t.Errorf("empty line should report zero values, got %+v", line)
	}
}

func TestBlockHelpers(t *testing.T) {
	block := Block{Lines: []Line{
		NewLine([]Token{{Content: "a", HPos: 0, VPos: 0, Width: 10, Height: 10}}),
		NewLine([]Token{
			{Content: "b", HPos: 0, VPos: 20, Width: 10, Height: 10},
			{Content: "c", HPos: 40, VPos: 20, Width: 10, Height: 10},
		}),
	}}

	if block.TokenCount() != 3 {
		t.Errorf("TokenCount() = %d, want 3", block.TokenCount())
	}
	if len(block.Tokens()) != 3 {
		t.Errorf("Tokens() returned %d tokens, want 3", len(block.Tokens()))
	}
	if box := block.BBox(); box != (BBox{0, 0, 50, 30}) {
		t.Errorf("BBox() = %+v, want {0 0 50 30}", box)
	}
	if block.Text() != "a\nb c" {
		t.Errorf("Text() = %q, want %q", block.Text(), "a\nb c")
	}
}

func TestMetrics_MultiColumn(t *testing.T) {
	if (Metrics{ColumnBins: []float64{10}}).MultiColumn() {
		t.Error("one bin is not multi-column")
	}
	if !(Metrics{ColumnBins: []float64{10, 200}}).MultiColumn() {
		t.Error("two bins are multi-column")
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTable_ExportFormats(t *testing.T) {
	table := NewTable(2, 2)
	table.Rows[0][0] = Cell{Text: "Year", IsHeader: true}
	table.Rows[0][1] = Cell{Text: "Amount", IsHeader: true}
	table.Rows[1][0] = Cell{Text: "2014"}
	table.Rows[1][1] = Cell{Text: "$1,000"}

	md := table.ToMarkdown()
	if !strings.Contains(md, "| Year | Amount |") {
		t.Errorf("ToMarkdown() missing header row:\n%s", md)
	}
	if !strings.Contains(md, "|---|---|") {
		t.Errorf("ToMarkdown() missing separator:\n%s", md)
	}

	csv := table.ToCSV()
	if !strings.Contains(csv, "2014,\"$1,000\"") {
		t.Errorf("ToCSV() did not quote comma cell:\n%s", csv)
	}
	if csv != "Year,Amount\n2014,\"$1,000\"\n" {
		t.Errorf("ToCSV() = %q", csv)
	}
}

func TestTable_CellAccess(t *testing.T) {
	table := NewTable(1, 2)
	if table.RowCount() != 1 || table.ColCount() != 2 {
		t.Fatalf("dimensions = %dx%d, want 1x2", table.RowCount(), table.ColCount())
	}
	if table.GetCell(5, 0) != nil {
		t.Error("GetCell out of range should be nil")
	}
	if table.GetCell(0, 3) != nil {
		t.Error("GetCell column out of range should be nil")
	}

	cell := table.GetCell(0, 1)
	cell.AppendToken(Token{Content: "$285.00", HPos: 10, VPos: 0, Width: 30, Height: 10})
	cell.AppendToken(Token{Content: "(1)", HPos: 45, VPos: 0, Width: 10, Height: 10})
	if table.Rows[0][1].Text != "$285.00 (1)" {
		t.Errorf("cell text = %q", table.Rows[0][1].Text)
	}
	if table.Rows[0][1].BBox != (BBox{10, 0, 45, 10}) {
		t.Errorf("cell bbox = %+v", table.Rows[0][1].BBox)
	}
}
