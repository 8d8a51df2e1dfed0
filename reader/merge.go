package reader

import (
	"strings"
	"unicode"

	"github.com/tsawler/spatialtext/model"
)

// defaultFontSize is assumed for glyphs that report no font size
const defaultFontSize = 10.0

// Glyph is one drawn piece of text in PDF user space (bottom-left origin,
// Y at the baseline).
type Glyph struct {
	Text     string
	X, Y     float64
	W        float64
	FontSize float64
}

// MergeConfig controls how glyphs are merged into words
type MergeConfig struct {
	// WordGap is the horizontal gap, as a fraction of the font size, that
	// starts a new word.
	WordGap float64 `yaml:"word_gap"`

	// BaselineTolerance is the baseline shift, as a fraction of the font
	// size, that starts a new word.
	BaselineTolerance float64 `yaml:"baseline_tolerance"`
}

// DefaultMergeConfig returns sensible defaults for glyph merging
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		WordGap:           0.25,
		BaselineTolerance: 0.3,
	}
}

type word struct {
	text     strings.Builder
	left     float64
	right    float64
	baseline float64
	size     float64
}

// MergeGlyphs merges glyphs, in content-stream order, into word tokens.
// pageTop is the upper edge of the page in user space and becomes VPos 0.
func MergeGlyphs(glyphs []Glyph, pageTop float64, cfg MergeConfig) []model.Token {
	var tokens []model.Token
	var cur *word

	flush := func() {
		if cur == nil {
			return
		}
		top := pageTop - cur.baseline - cur.size
		if tok, ok := model.NewToken(cur.text.String(), cur.left, top, cur.right-cur.left, cur.size); ok {
			tokens = append(tokens, tok)
		}
		cur = nil
	}

	for _, g := range glyphs {
		size := g.FontSize
		if size <= 0 {
			size = defaultFontSize
		}

		if strings.TrimFunc(g.Text, unicode.IsSpace) == "" {
			flush()
			continue
		}

		if cur != nil {
			gap := g.X - cur.right
			shift := g.Y - cur.baseline
			if shift < 0 {
				shift = -shift
			}
			if gap > cfg.WordGap*size || shift > cfg.BaselineTolerance*size || g.X < cur.left {
				flush()
			}
		}

		if cur == nil {
			cur = &word{left: g.X, right: g.X, baseline: g.Y, size: size}
		}
		cur.text.WriteString(g.Text)
		if r := g.X + g.W; r > cur.right {
			cur.right = r
		}
		if size > cur.size {
			cur.size = size
		}
	}
	flush()

	return tokens
}
