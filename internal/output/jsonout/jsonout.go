// Package jsonout writes the assembled document as lossless interchange
// JSON, either to stdout or to a file, for the downstream editor/renderer.
package jsonout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// Option configures a json Output.
type Option func(*Output)

// WithIndent enables pretty-printed JSON.
func WithIndent() Option {
	return func(o *Output) { o.indent = true }
}

// Output JSON-encodes the document to a writer.
type Output struct {
	w      io.Writer
	closer io.Closer
	indent bool
}

// New creates an output writing to stdout.
func New(opts ...Option) *Output {
	o := &Output{w: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewFile creates an output writing to the given path, truncating it.
func NewFile(path string, opts ...Option) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("json output: create %s: %w", path, err)
	}
	o := &Output{w: f, closer: f}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// NewWriter creates an output writing to an arbitrary writer.
func NewWriter(w io.Writer, opts ...Option) *Output {
	o := &Output{w: w}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, doc model.Document) error {
	enc := json.NewEncoder(o.w)
	if o.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("json output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	if o.closer != nil {
		return o.closer.Close()
	}
	return nil
}
