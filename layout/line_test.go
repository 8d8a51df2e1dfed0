package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/tsawler/spatialtext/model"
)

// makeToken creates a test token
func makeToken(content string, hpos, vpos, width, height float64) model.Token {
	return model.Token{
		Content: content,
		HPos:    hpos,
		VPos:    vpos,
		Width:   width,
		Height:  height,
	}
}

func TestLineGrouper_Empty(t *testing.T) {
	grouper := NewLineGrouper()
	if lines := grouper.Group(nil); len(lines) != 0 {
		t.Errorf("Expected 0 lines, got %d", len(lines))
	}
}

func TestLineGrouper_CityCash(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.Token{
		makeToken("CASH", 189.8, 84.8, 29.3, 10.6),
		makeToken("CITY", 160.8, 84.8, 26.4, 10.6),
	})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if len(lines[0].Tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(lines[0].Tokens))
	}
	if lines[0].Tokens[0].Content != "CITY" || lines[0].Tokens[1].Content != "CASH" {
		t.Errorf("Expected CITY, CASH order, got %q", lines[0].Text())
	}
	if math.Abs(lines[0].AvgVPos-84.8) > 1e-9 {
		t.Errorf("Expected AvgVPos 84.8, got %f", lines[0].AvgVPos)
	}
}

func TestLineGrouper_BucketBoundaries(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.Token{
		makeToken("below", 0, 12.0, 10, 10),
		makeToken("above", 0, 11.9, 10, 10),
		makeToken("top", 0, 0, 10, 10),
	})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "above top" && lines[0].Text() != "top above" {
		t.Errorf("Expected first line to hold top and above, got %q", lines[0].Text())
	}
	if lines[1].Text() != "below" {
		t.Errorf("Expected second line 'below', got %q", lines[1].Text())
	}
}

func TestLineGrouper_StableTies(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.Token{
		makeToken("first", 10, 0, 10, 10),
		makeToken("second", 10, 1, 10, 10),
		makeToken("zero", 0, 2, 10, 10),
	})

	if got := lines[0].Text(); got != "zero first second" {
		t.Errorf("Expected 'zero first second', got %q", got)
	}
}

func TestLineGrouper_NonFiniteVPos(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.Token{
		makeToken("nan", 0, math.NaN(), 10, 10),
		makeToken("neg", 20, -50, 10, 10),
		makeToken("zero", 40, 5, 10, 10),
		makeToken("inf", 0, math.Inf(1), 10, 10),
	})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "nan neg zero" {
		t.Errorf("Expected sanitized tokens in bucket 0, got %q", got)
	}
	if got := lines[1].Text(); got != "inf" {
		t.Errorf("Expected 'inf' last, got %q", got)
	}
}

func TestLineGrouper_Idempotent(t *testing.T) {
	tokens := []model.Token{
		makeToken("b", 50, 30, 10, 10),
		makeToken("a", 10, 31, 10, 10),
		makeToken("c", 10, 2, 10, 10),
		makeToken("d", 90, 60, 10, 10),
	}

	grouper := NewLineGrouper()
	first := grouper.Group(tokens)
	second := grouper.Group(tokens)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical lines on repeated grouping")
	}
	if tokens[0].Content != "b" {
		t.Errorf("Group must not reorder its input")
	}
}

func TestLineGrouper_CustomBucketHeight(t *testing.T) {
	grouper := NewLineGrouperWithConfig(GroupConfig{BucketHeight: 30})
	lines := grouper.Group([]model.Token{
		makeToken("a", 0, 0, 10, 10),
		makeToken("b", 20, 25, 10, 10),
	})
	if len(lines) != 1 {
		t.Errorf("Expected 1 line with bucket height 30, got %d", len(lines))
	}

	fallback := NewLineGrouperWithConfig(GroupConfig{BucketHeight: 0})
	if fallback.Config().BucketHeight != 12 {
		t.Errorf("Expected default bucket height, got %f", fallback.Config().BucketHeight)
	}
}
