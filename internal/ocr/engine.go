package ocr

import (
	"context"
	"errors"
)

// ErrEngineFailure wraps any failure inside the recognition engine. The
// engine message is surfaced to the caller.
var ErrEngineFailure = errors.New("ocr engine failure")

// Engine converts an image to raw text. Implementations are black boxes
// to the rest of the pipeline.
type Engine interface {
	Recognize(ctx context.Context, image []byte, languages []string) (string, error)
}
