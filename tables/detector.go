package tables

import (
	"sort"

	"github.com/tsawler/spatialtext/model"
)

// Detector is the interface for table extraction algorithms
type Detector interface {
	// Detect builds tables from a page's blocks
	Detect(blocks []model.Block) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int `yaml:"min_rows"`

	// Minimum columns for a valid table
	MinCols int `yaml:"min_cols"`

	// Minimum fraction of tokens aligned to their column (0-1)
	MinConfidence float64 `yaml:"min_confidence"`

	// Maximum distance between positions that share a column
	ColumnTolerance float64 `yaml:"column_tolerance"`

	// Whether the first row holds column headers
	HeaderRow bool `yaml:"header_row"`

	// Whether only blocks classified as tables are considered
	ClassifiedOnly bool `yaml:"classified_only"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:         2,
		MinCols:         2,
		MinConfidence:   0.5,
		ColumnTolerance: 40,
		HeaderRow:       true,
		ClassifiedOnly:  true,
	}
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names in sorted order
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	RegisterDetector(NewGeometricDetector())
}
