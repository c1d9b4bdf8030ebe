package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine using the gosseract client. A fresh
// client is created per call; gosseract clients are not safe for
// concurrent use.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

// Recognize runs Tesseract over the image. Recognition time is unbounded
// on the Tesseract side, so the work runs in a goroutine and the caller's
// context enforces the deadline.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		c := e.clientFactory()
		defer c.Close()

		if err := c.SetImageFromBytes(image); err != nil {
			ch <- result{err: fmt.Errorf("set image: %w", err)}
			return
		}
		if len(languages) > 0 {
			if err := c.SetLanguage(languages...); err != nil {
				ch <- result{err: fmt.Errorf("set languages: %w", err)}
				return
			}
		}
		text, err := c.Text()
		if err != nil {
			ch <- result{err: fmt.Errorf("recognize text: %w", err)}
			return
		}
		ch <- result{text: text}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.text, res.err
	}
}

var _ Engine = (*TesseractEngine)(nil)
