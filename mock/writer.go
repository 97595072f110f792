package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.Writer = (*Writer)(nil)

// Writer is a mock implementation of wikicrawl.Writer.
type Writer struct {
	WriteFn func(ctx context.Context, unit *wikicrawl.Unit) (string, error)
}

func (w *Writer) Write(ctx context.Context, unit *wikicrawl.Unit) (string, error) {
	return w.WriteFn(ctx, unit)
}
