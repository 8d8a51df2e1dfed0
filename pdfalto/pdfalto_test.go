package pdfalto

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	r := NewRunner()

	tests := []struct {
		name        string
		first, last int
		expected    []string
	}{
		{
			name: "single page", first: 1, last: 1,
			expected: []string{"-f", "1", "-l", "1", "-readingOrder", "-noImage", "-noLineNumbers", "in.pdf", "out.xml"},
		},
		{
			name: "all pages", first: 0, last: 0,
			expected: []string{"-readingOrder", "-noImage", "-noLineNumbers", "in.pdf", "out.xml"},
		},
		{
			name: "open ended", first: 3, last: 0,
			expected: []string{"-f", "3", "-readingOrder", "-noImage", "-noLineNumbers", "in.pdf", "out.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Command("in.pdf", "out.xml", tt.first, tt.last)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Command() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewRunnerWithConfigDefaultsBinary(t *testing.T) {
	r := NewRunnerWithConfig(Config{})
	if r.Config().Binary != "pdfalto" {
		t.Errorf("expected default binary, got %q", r.Config().Binary)
	}
	if len(r.Config().Args) != 0 {
		t.Errorf("expected explicit empty args to be kept, got %v", r.Config().Args)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := NewRunnerWithConfig(Config{Binary: "/nonexistent/pdfalto-binary"})
	if r.Available() {
		t.Fatal("expected binary to be unavailable")
	}

	_, err := r.Run(context.Background(), "in.pdf", 1, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	r := NewRunner()
	if !r.Available() {
		t.Skip("pdfalto not installed")
	}

	_, err := r.Run(context.Background(), "/nonexistent/input.pdf", 1, 1)
	if err == nil {
		t.Error("expected error for missing input file")
	}
}
