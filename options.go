package spatialtext

import (
	"context"

	"github.com/tsawler/spatialtext/config"
	"github.com/tsawler/spatialtext/grid"
)

// ExtractOptions holds configuration for one extraction.
type ExtractOptions struct {
	// Page to process (1-indexed)
	page int

	// Placement policy override; nil keeps config.Grid.Policy
	policy *grid.Policy

	// Pipeline configuration
	config config.Config

	// Convert PDFs with pdfalto instead of the built-in reader
	usePdfalto bool

	// Viewport size handed to sessions
	viewWidth  int
	viewHeight int

	ctx context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		page:       1,
		config:     config.Default(),
		viewWidth:  80,
		viewHeight: 25,
		ctx:        context.Background(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.policy != nil {
		p := *o.policy
		newOpts.policy = &p
	}
	newOpts.config.Pdfalto.Args = append([]string(nil), o.config.Pdfalto.Args...)
	return newOpts
}

// gridConfig returns the grid configuration with the policy override applied
func (o ExtractOptions) gridConfig() grid.Config {
	cfg := o.config.Grid
	if o.policy != nil {
		cfg.Policy = *o.policy
	}
	return cfg
}
