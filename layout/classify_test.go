package layout

import (
	"math"
	"testing"

	"github.com/tsawler/spatialtext/model"
)

// paragraphBlock returns three left-aligned lines, each 205 units wide
func paragraphBlock() model.Block {
	var lines []model.Line
	for row := 0; row < 3; row++ {
		var tokens []model.Token
		for i := 0; i < 7; i++ {
			tokens = append(tokens, makeToken("word", 50+float64(i)*30, float64(row)*14, 25, 10))
		}
		lines = append(lines, model.NewLine(tokens))
	}
	return model.Block{Lines: lines}
}

// tableBlock returns two rows with tokens at 0/200 and 0/220/400
func tableBlock() model.Block {
	return model.Block{Lines: []model.Line{
		model.NewLine([]model.Token{
			makeToken("Year", 0, 0, 30, 10),
			makeToken("Amount", 200, 0, 30, 10),
		}),
		model.NewLine([]model.Token{
			makeToken("2014", 0, 14, 30, 10),
			makeToken("$285", 220, 14, 30, 10),
			makeToken("(1)", 400, 14, 30, 10),
		}),
	}}
}

func TestClassifier_Empty(t *testing.T) {
	c := NewClassifier()

	block := model.Block{Classification: model.ClassTable}
	if res := c.Classify(&block); res.Classification != model.ClassEmpty {
		t.Errorf("Expected empty, got %s", res.Classification)
	}
	if block.Classification != model.ClassEmpty {
		t.Errorf("Expected block to be labelled empty, got %s", block.Classification)
	}

	if res := c.Classify(nil); res.Classification != model.ClassEmpty {
		t.Errorf("Expected empty for nil block, got %s", res.Classification)
	}
}

func TestClassifier_Table(t *testing.T) {
	block := tableBlock()
	res := NewClassifier().Classify(&block)

	if res.Classification != model.ClassTable {
		t.Fatalf("Expected table, got %s", res.Classification)
	}
	if len(res.Metrics.ColumnBins) != 3 {
		t.Errorf("Expected 3 column bins, got %d", len(res.Metrics.ColumnBins))
	}
	if res.Metrics.BigGapRatio != 1 {
		t.Errorf("Expected big gap ratio 1, got %f", res.Metrics.BigGapRatio)
	}
	if math.Abs(res.Metrics.AlignmentScore-0.8) > 1e-9 {
		t.Errorf("Expected alignment score 0.8, got %f", res.Metrics.AlignmentScore)
	}
	for i, line := range block.Lines {
		if !line.IsTable {
			t.Errorf("Expected line %d to be marked as table", i)
		}
	}
}

func TestClassifier_Paragraph(t *testing.T) {
	block := paragraphBlock()
	block.Lines[0].IsTable = true

	res := NewClassifier().Classify(&block)
	if res.Classification != model.ClassParagraph {
		t.Fatalf("Expected paragraph, got %s (metrics %+v)", res.Classification, res.Metrics)
	}
	if res.Metrics.LeftMarginVariance != 0 {
		t.Errorf("Expected zero margin variance, got %f", res.Metrics.LeftMarginVariance)
	}
	if res.Metrics.AvgContentWidth != 205 {
		t.Errorf("Expected average width 205, got %f", res.Metrics.AvgContentWidth)
	}
	if block.Lines[0].IsTable {
		t.Error("Expected IsTable to be cleared on a paragraph")
	}
}

func TestClassifier_Unknown(t *testing.T) {
	block := model.Block{Lines: []model.Line{
		model.NewLine([]model.Token{makeToken("X", 10, 0, 10, 10)}),
		model.NewLine([]model.Token{makeToken("Y", 100, 14, 10, 10)}),
	}}

	res := NewClassifier().Classify(&block)
	if res.Classification != model.ClassUnknown {
		t.Errorf("Expected unknown, got %s", res.Classification)
	}
	if res.Metrics.LeftMarginMean != 55 {
		t.Errorf("Expected margin mean 55, got %f", res.Metrics.LeftMarginMean)
	}
}

func TestClassifier_Totality(t *testing.T) {
	blocks := []model.Block{
		{},
		paragraphBlock(),
		tableBlock(),
		{Lines: []model.Line{model.NewLine([]model.Token{makeToken("n", math.NaN(), math.Inf(1), -1, 0)})}},
		{Lines: []model.Line{model.NewLine(nil)}},
	}

	valid := map[model.Classification]bool{
		model.ClassEmpty: true, model.ClassParagraph: true, model.ClassTable: true, model.ClassUnknown: true,
	}
	c := NewClassifier()
	for i := range blocks {
		res := c.Classify(&blocks[i])
		if !valid[res.Classification] {
			t.Errorf("block %d: unexpected classification %d", i, res.Classification)
		}
	}
	if blocks[0].Classification != model.ClassEmpty {
		t.Errorf("Expected empty block to classify as empty, got %s", blocks[0].Classification)
	}
}

func TestClassifier_CustomThresholds(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cfg.TableGapRatio = 1
	block := tableBlock()

	if res := NewClassifierWithConfig(cfg).Classify(&block); res.Classification == model.ClassTable {
		t.Error("Expected no table when the ratio must exceed 1")
	}
}

func TestSummarize(t *testing.T) {
	blocks := []model.Block{paragraphBlock(), tableBlock(), {}}
	NewClassifier().ClassifyAll(blocks)

	s := Summarize(blocks)
	if s.Blocks != 3 || s.Tables != 1 || s.Paragraphs != 1 || s.Empty != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if !s.PreferRaw() {
		t.Error("Expected raw placement for a page with a table")
	}

	prose := []model.Block{paragraphBlock()}
	NewClassifier().ClassifyAll(prose)
	if Summarize(prose).PreferRaw() {
		t.Error("Expected flowed placement for plain prose")
	}
}
