// Package source defines where raw feature records come from. Sources wrap
// the external parsers' interchange files; the normalizer turns what they
// load into canonical records.
package source

import (
	"context"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// Source loads one list of raw feature records.
type Source interface {
	// Load reads every raw record the source holds. A read failure is a
	// configuration fault and aborts the run.
	Load(ctx context.Context) ([]model.RawRecord, error)
}
