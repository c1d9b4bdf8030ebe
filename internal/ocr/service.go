package ocr

import (
	"context"
	"fmt"
	"io"
	"time"

	"capture-backend/internal/shared/storage/object"
	"capture-backend/internal/shared/telemetry"
)

// Service stages an uploaded image, runs recognition over it and shapes
// the result into a delta document.
type Service struct {
	Store     object.ObjectStore
	Engine    Engine
	Languages []string
	Timeout   time.Duration
}

func NewService(store object.ObjectStore, engine Engine, languages []string, timeout time.Duration) *Service {
	return &Service{Store: store, Engine: engine, Languages: languages, Timeout: timeout}
}

// ProcessImage runs the full ingestion pipeline. The staged upload is
// deleted on every exit path, including engine failure and timeout.
func (s *Service) ProcessImage(ctx context.Context, userID, fileName string, r io.Reader) (Delta, error) {
	key, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Delta{}, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		// Cleanup must survive request cancellation and deadline expiry.
		if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil {
			telemetry.Error("ocr.cleanup_failed", map[string]any{
				"storage_key": key,
				"err":         err.Error(),
			})
		}
	}()

	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return Delta{}, fmt.Errorf("open staged upload: %w", err)
	}
	image, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return Delta{}, fmt.Errorf("read staged upload: %w", err)
	}

	recognizeCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		recognizeCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	text, err := s.Engine.Recognize(recognizeCtx, image, s.Languages)
	if err != nil {
		return Delta{}, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}

	return BuildDelta(Normalize(text)), nil
}
