// Package pdfalto runs the pdfalto command-line tool and parses its ALTO
// output into token pages.
//
// The binary, its arguments and the timeout are explicit configuration:
//
//	r := pdfalto.NewRunnerWithConfig(pdfalto.Config{Binary: "/opt/bin/pdfalto"})
//	doc, err := r.Run(ctx, "report.pdf", 1, 1)
package pdfalto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/spatialtext/alto"
)

// ErrNotFound is returned when the pdfalto binary cannot be located
var ErrNotFound = errors.New("pdfalto: binary not found")

// Config holds configuration for the pdfalto runner
type Config struct {
	// Binary is the executable name or path
	Binary string `yaml:"binary"`

	// Args are passed before the page range and file arguments
	Args []string `yaml:"args"`

	// Timeout bounds one invocation. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns reading-order extraction without images or line numbers
func DefaultConfig() Config {
	return Config{
		Binary:  "pdfalto",
		Args:    []string{"-readingOrder", "-noImage", "-noLineNumbers"},
		Timeout: 60 * time.Second,
	}
}

// Runner invokes pdfalto
type Runner struct {
	config Config
}

// NewRunner creates a runner with default configuration
func NewRunner() *Runner {
	return &Runner{config: DefaultConfig()}
}

// NewRunnerWithConfig creates a runner with custom configuration. An empty
// Binary falls back to "pdfalto".
func NewRunnerWithConfig(config Config) *Runner {
	if config.Binary == "" {
		config.Binary = DefaultConfig().Binary
	}
	return &Runner{config: config}
}

// Config returns the runner's configuration
func (r *Runner) Config() Config {
	return r.config
}

// Available reports whether the configured binary can be found
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.config.Binary)
	return err == nil
}

// Command returns the arguments for converting pages first..last (1-based,
// inclusive) of pdfPath into outPath. Non-positive bounds are omitted.
func (r *Runner) Command(pdfPath, outPath string, first, last int) []string {
	args := make([]string, 0, len(r.config.Args)+6)
	if first > 0 {
		args = append(args, "-f", strconv.Itoa(first))
	}
	if last > 0 {
		args = append(args, "-l", strconv.Itoa(last))
	}
	args = append(args, r.config.Args...)
	return append(args, pdfPath, outPath)
}

// Run converts pages first..last of pdfPath and parses the result. The call
// is made once; failures are not retried.
func (r *Runner) Run(ctx context.Context, pdfPath string, first, last int) (*alto.Document, error) {
	bin, err := exec.LookPath(r.config.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, r.config.Binary)
	}

	dir, err := os.MkdirTemp("", "pdfalto-*")
	if err != nil {
		return nil, fmt.Errorf("pdfalto: creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	outPath := filepath.Join(dir, "page.xml")

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, r.Command(pdfPath, outPath, first, last)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("pdfalto: %w", ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("pdfalto: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdfalto: %w", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("pdfalto: reading output: %w", err)
	}
	defer f.Close()

	return alto.Parse(f)
}
