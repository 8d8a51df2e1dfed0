package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/spatialtext/model"
)

// Policy selects how tokens are placed on the grid
type Policy int

const (
	// PolicyAuto picks raw or flowed placement from the page's block labels
	PolicyAuto Policy = iota
	// PolicyRaw places tokens at their source coordinates, first writer wins
	PolicyRaw
	// PolicyFlowed gives every line its own row in reading order
	PolicyFlowed
)

// String returns a string representation of the policy
func (p Policy) String() string {
	switch p {
	case PolicyRaw:
		return "raw"
	case PolicyFlowed:
		return "flowed"
	default:
		return "auto"
	}
}

// ParsePolicy converts a policy name back into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PolicyAuto, nil
	case "raw":
		return PolicyRaw, nil
	case "flowed", "flow":
		return PolicyFlowed, nil
	default:
		return PolicyAuto, fmt.Errorf("unknown placement policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Config holds configuration for grid sizing and placement
type Config struct {
	// CharWidth is the source width of one column (default: 6)
	CharWidth float64 `yaml:"char_width"`

	// LineHeight is the source height of one row (default: 12)
	LineHeight float64 `yaml:"line_height"`

	// MinWidth and MinHeight are the smallest grid dimensions (defaults: 140, 60)
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	// PadColumns and PadRows are added beyond the content (defaults: 4, 2)
	PadColumns int `yaml:"pad_columns"`
	PadRows    int `yaml:"pad_rows"`

	// MaxWidth and MaxHeight cap the grid for pathological coordinates
	// (defaults: 1024, 4096). Zero disables the cap.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// Policy selects the placement strategy (default: auto)
	Policy Policy `yaml:"policy"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		CharWidth:  6,
		LineHeight: 12,
		MinWidth:   140,
		MinHeight:  60,
		PadColumns: 4,
		PadRows:    2,
		MaxWidth:   1024,
		MaxHeight:  4096,
		Policy:     PolicyAuto,
	}
}

// Validate reports configuration values that would make placement
// meaningless
func (c Config) Validate() error {
	if !validScale(c.CharWidth) {
		return fmt.Errorf("grid: char width must be positive, got %v", c.CharWidth)
	}
	if !validScale(c.LineHeight) {
		return fmt.Errorf("grid: line height must be positive, got %v", c.LineHeight)
	}
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return fmt.Errorf("grid: minimum size must be at least 1x1, got %dx%d", c.MinWidth, c.MinHeight)
	}
	if c.PadColumns < 0 || c.PadRows < 0 {
		return fmt.Errorf("grid: padding must not be negative")
	}
	if (c.MaxWidth > 0 && c.MaxWidth < c.MinWidth) || (c.MaxHeight > 0 && c.MaxHeight < c.MinHeight) {
		return fmt.Errorf("grid: maximum size is below the minimum size")
	}
	return nil
}

// SizeFor returns grid dimensions that contain every token: the maximum
// right and bottom edges scaled to cells, plus padding, no smaller than the
// minimum and no larger than the maximum size.
func SizeFor(tokens []model.Token, cfg Config) (width, height int) {
	def := DefaultConfig()
	if !validScale(cfg.CharWidth) {
		cfg.CharWidth = def.CharWidth
	}
	if !validScale(cfg.LineHeight) {
		cfg.LineHeight = def.LineHeight
	}

	right, bottom := model.TokenBounds(tokens)
	width = fitDimension(right/cfg.CharWidth, cfg.PadColumns, cfg.MinWidth, cfg.MaxWidth)
	height = fitDimension(bottom/cfg.LineHeight, cfg.PadRows, cfg.MinHeight, cfg.MaxHeight)
	return width, height
}

func fitDimension(cells float64, pad, minimum, maximum int) int {
	limit := math.MaxInt32
	if maximum > 0 {
		limit = maximum
	}
	n := math.Ceil(cells) + float64(max(pad, 0))
	if math.IsNaN(n) || n < 0 {
		n = 0
	}
	if n > float64(limit) {
		n = float64(limit)
	}
	return max(int(n), minimum, 1)
}
