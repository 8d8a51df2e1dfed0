package alto

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/spatialtext/model"
)

const sampleALTO = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
  <Description><MeasurementUnit>pixel</MeasurementUnit></Description>
  <Layout>
    <Page ID="Page1" WIDTH="612" HEIGHT="792">
      <PrintSpace>
        <TextBlock ID="p1_b1">
          <TextLine ID="p1_t1">
            <String ID="s1" CONTENT="CASH" HPOS="189.8" VPOS="84.8" WIDTH="29.3" HEIGHT="10.6"/>
            <SP/>
            <String ID="s2" CONTENT="CITY" HPOS="160.8" VPOS="84.8" WIDTH="26.4" HEIGHT="10.6"/>
          </TextLine>
          <TextLine ID="p1_t2">
            <String CONTENT="" HPOS="1" VPOS="1" WIDTH="1" HEIGHT="1"/>
          </TextLine>
        </TextBlock>
        <TextBlock ID="p1_b2">
          <TextLine>
            <String CONTENT="Total" HPOS="abc" VPOS="120" WIDTH="" HEIGHT="10"/>
          </TextLine>
        </TextBlock>
        <TextBlock ID="empty"/>
      </PrintSpace>
    </Page>
    <Page ID="Page2" WIDTH="612" HEIGHT="792"/>
  </Layout>
</alto>`

func TestParse_Structure(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleALTO))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if doc.MeasurementUnit != "pixel" {
		t.Errorf("MeasurementUnit = %q, want pixel", doc.MeasurementUnit)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("Expected 2 pages, got %d", doc.PageCount())
	}

	page := doc.Pages[0]
	if page.ID != "Page1" || page.Width != 612 || page.Height != 792 {
		t.Errorf("Unexpected page header %+v", page)
	}
	if len(page.TextBlocks) != 2 {
		t.Fatalf("Expected 2 non-empty blocks, got %d", len(page.TextBlocks))
	}
	if len(page.TextBlocks[0].Lines) != 1 {
		t.Errorf("Expected the empty-content line to be dropped, got %d lines", len(page.TextBlocks[0].Lines))
	}
	if page.TokenCount() != 3 {
		t.Errorf("Expected 3 tokens, got %d", page.TokenCount())
	}

	if len(doc.Pages[1].TextBlocks) != 0 {
		t.Error("Expected the second page to be blank")
	}
}

func TestParse_MalformedNumbersBecomeZero(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleALTO))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	total := doc.Pages[0].TextBlocks[1].Lines[0].Tokens[0]
	if total.Content != "Total" || total.HPos != 0 || total.Width != 0 || total.VPos != 120 {
		t.Errorf("Unexpected token %+v", total)
	}
}

func TestPage_Blocks(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleALTO))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	blocks := doc.Pages[0].Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if got := blocks[0].Lines[0].Text(); got != "CITY CASH" {
		t.Errorf("Expected tokens ordered by HPos, got %q", got)
	}
	if math.Abs(blocks[0].Lines[0].AvgVPos-84.8) > 1e-9 {
		t.Errorf("Expected AvgVPos 84.8, got %f", blocks[0].Lines[0].AvgVPos)
	}

	// Tokens keeps document order
	if doc.Pages[0].Tokens()[0].Content != "CASH" {
		t.Error("Expected Tokens() in document order")
	}
}

func TestParse_DropsEmptyBlocks(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleALTO))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	var ids []string
	for _, b := range doc.Pages[0].TextBlocks {
		ids = append(ids, b.ID)
	}
	if strings.Join(ids, ",") != "p1_b1,p1_b2" {
		t.Errorf("Expected blocks p1_b1,p1_b2, got %v", ids)
	}
}

func TestParse_LooseStrings(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<alto><String CONTENT="No PDF" HPOS="0" VPOS="0"/></alto>`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if doc.PageCount() != 1 || doc.Pages[0].TokenCount() != 1 {
		t.Fatalf("Expected one implicit page with one token, got %+v", doc.Pages)
	}
	if doc.Pages[0].Tokens()[0].Content != "No PDF" {
		t.Errorf("Unexpected content %q", doc.Pages[0].Tokens()[0].Content)
	}
}

func TestParse_Latin1(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<alto><Layout><Page><TextBlock><TextLine>" +
		"<String CONTENT=\"Caf\xe9\" HPOS=\"1\" VPOS=\"2\" WIDTH=\"3\" HEIGHT=\"4\"/>" +
		"</TextLine></TextBlock></Page></Layout></alto>")

	doc, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes() failed: %v", err)
	}
	if got := doc.Pages[0].Tokens()[0].Content; got != "Café" {
		t.Errorf("Expected decoded content %q, got %q", "Café", got)
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<alto/>`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("Expected no pages, got %d", doc.PageCount())
	}
	if _, err := doc.Page(0); !errors.Is(err, ErrNoPage) {
		t.Errorf("Expected ErrNoPage, got %v", err)
	}
}

func TestParse_Truncated(t *testing.T) {
	if _, err := Parse(strings.NewReader(`<alto><Layout><Page`)); err == nil {
		t.Error("Expected an error for truncated XML")
	}
}

func TestExport_RoundTrip(t *testing.T) {
	blocks := []model.Block{
		{Lines: []model.Line{
			model.NewLine([]model.Token{
				{Content: "CITY", HPos: 160.8, VPos: 84.8, Width: 26.4, Height: 10.6},
				{Content: "CASH", HPos: 189.8, VPos: 84.8, Width: 29.3, Height: 10.6},
			}),
		}},
		{Lines: []model.Line{
			model.NewLine([]model.Token{{Content: `R&D "Q1"`, HPos: 10, VPos: 200, Width: 40, Height: 10}}),
			model.NewLine(nil),
		}},
		{},
	}

	doc := &Document{MeasurementUnit: "pixel", Pages: []Page{NewPage("Page1", 612, 792, blocks)}}

	var buf bytes.Buffer
	if err := Export(&buf, doc); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `HPOS="160.8"`) {
		t.Errorf("Expected exact coordinates in output:\n%s", buf.String())
	}

	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() of exported XML failed: %v", err)
	}
	if back.PageCount() != 1 || len(back.Pages[0].TextBlocks) != 2 {
		t.Fatalf("Unexpected structure after round trip: %+v", back.Pages)
	}

	want := doc.Pages[0].Tokens()
	got := back.Pages[0].Tokens()
	if len(got) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if back.Pages[0].Width != 612 || back.MeasurementUnit != "pixel" {
		t.Errorf("Expected page header to survive, got %+v", back.Pages[0])
	}
}
