package model

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// Token is one positioned unit of text produced by an extraction tool.
// Tokens are immutable once created.
type Token struct {
	Content string
	HPos    float64
	VPos    float64
	Width   float64
	Height  float64
}

// NewToken builds a token with NFC-normalized content. It reports false when
// the content is empty, in which case the token must be dropped.
func NewToken(content string, hpos, vpos, width, height float64) (Token, bool) {
	content = norm.NFC.String(content)
	if content == "" {
		return Token{}, false
	}
	return Token{
		Content: content,
		HPos:    hpos,
		VPos:    vpos,
		Width:   width,
		Height:  height,
	}, true
}

// Right returns the horizontal position of the token's right edge
func (t Token) Right() float64 {
	return t.HPos + t.Width
}

// Bottom returns the vertical position of the token's bottom edge
func (t Token) Bottom() float64 {
	return t.VPos + t.Height
}

// BBox returns the token's bounding box
func (t Token) BBox() BBox {
	return BBox{X: t.HPos, Y: t.VPos, Width: t.Width, Height: t.Height}
}

// Finite maps NaN, infinities and negative values onto the valid coordinate
// range. NaN and negatives become 0, +Inf becomes math.MaxFloat32.
func Finite(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case math.IsInf(v, 1), v > math.MaxFloat32:
		return math.MaxFloat32
	default:
		return v
	}
}

// TokenStore holds the tokens of the page currently being processed.
type TokenStore struct {
	tokens []Token
}

// NewTokenStore creates an empty store
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// NewTokenStoreFrom creates a store from existing tokens, dropping any with
// empty content.
func NewTokenStoreFrom(tokens []Token) *TokenStore {
	s := &TokenStore{tokens: make([]Token, 0, len(tokens))}
	for _, t := range tokens {
		s.AddToken(t)
	}
	return s
}

// Add appends a token built from raw values. It returns false if the token
// was dropped for having empty content.
func (s *TokenStore) Add(content string, hpos, vpos, width, height float64) bool {
	tok, ok := NewToken(content, hpos, vpos, width, height)
	if !ok {
		return false
	}
	s.tokens = append(s.tokens, tok)
	return true
}

// AddToken appends an existing token, normalizing and validating its content
func (s *TokenStore) AddToken(t Token) bool {
	return s.Add(t.Content, t.HPos, t.VPos, t.Width, t.Height)
}

// Len returns the number of tokens
func (s *TokenStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

// Tokens returns a copy of the stored tokens in insertion order
func (s *TokenStore) Tokens() []Token {
	if s == nil || len(s.tokens) == 0 {
		return nil
	}
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Reset discards all tokens, typically when a new page is loaded
func (s *TokenStore) Reset() {
	s.tokens = s.tokens[:0]
}

// Bounds returns the maximum right and bottom edges over all tokens, with
// non-finite values sanitized.
func (s *TokenStore) Bounds() (maxRight, maxBottom float64) {
	if s == nil {
		return 0, 0
	}
	return TokenBounds(s.tokens)
}

// TokenBounds returns the maximum right and bottom edges of the tokens
func TokenBounds(tokens []Token) (maxRight, maxBottom float64) {
	for _, t := range tokens {
		if r := Finite(Finite(t.HPos) + Finite(t.Width)); r > maxRight {
			maxRight = r
		}
		if b := Finite(Finite(t.VPos) + Finite(t.Height)); b > maxBottom {
			maxBottom = b
		}
	}
	return maxRight, maxBottom
}
