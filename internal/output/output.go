package output

import (
	"context"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// Output defines the interface for assembled document destinations.
type Output interface {
	Write(ctx context.Context, doc model.Document) error
	Close() error
}
