// Package jsonfile reads the interchange JSON the upstream parsers emit:
// either a bare array of records or an object with a "features" array.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/source"
)

func init() {
	source.Register("jsonfile", func(path string) source.Source {
		return &Source{Path: path}
	})
}

// Source implements source.Source for an interchange JSON file.
type Source struct {
	Path string
}

// envelope is the wrapped form: {"features": [...], ...}. The PM parser
// writes bare arrays, the orchestrator writes envelopes.
type envelope struct {
	Features []model.RawRecord `json:"features"`
}

func (s *Source) Load(ctx context.Context) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.Path, err)
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", s.Path, err)
	}
	if env.Features == nil {
		return nil, fmt.Errorf("jsonfile: %s has neither a record array nor a features field", s.Path)
	}
	return env.Features, nil
}
