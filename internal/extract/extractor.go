package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/billease/internal/calculator"
	"github.com/mmynk/billease/internal/obs"
)

var (
	ErrEmptyImage    = errors.New("image is empty")
	ErrImageTooLarge = errors.New("image is too large")
)

// Result is what an extraction produced.
type Result struct {
	Items    []calculator.Item
	Warnings []string
}

// Extractor runs a Client and cleans up its answer.
type Extractor struct {
	client        Client
	maxImageBytes int
	metrics       *obs.Metrics
}

// NewExtractor wraps client. A maxImageBytes of zero or less disables the
// size check; metrics may be nil.
func NewExtractor(client Client, maxImageBytes int, metrics *obs.Metrics) *Extractor {
	return &Extractor{client: client, maxImageBytes: maxImageBytes, metrics: metrics}
}

// Extract reads the items off a bill image.
func (e *Extractor) Extract(ctx context.Context, image []byte, mimeType string) (*Result, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if e.maxImageBytes > 0 && len(image) > e.maxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(image), e.maxImageBytes)
	}

	start := time.Now()
	raw, err := e.client.ExtractItems(ctx, image, mimeType)
	if err != nil {
		e.metrics.ObserveExtraction(obs.ExtractClientError, time.Since(start), 0)
		slog.Error("Extraction request failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("extract items: %w", err)
	}
	slog.Debug("Extraction raw output", "output", raw)

	items, err := ParseItems(raw)
	if err != nil {
		e.metrics.ObserveExtraction(obs.ExtractInvalidOutput, time.Since(start), 0)
		slog.Warn("Extraction returned unusable output", "error", err)
		return nil, err
	}

	outcome := obs.ExtractOK
	if len(items) == 0 {
		outcome = obs.ExtractNoItems
	}
	e.metrics.ObserveExtraction(outcome, time.Since(start), len(items))
	slog.Info("Extracted bill items", "count", len(items), "duration_ms", time.Since(start).Milliseconds())

	return &Result{Items: items, Warnings: ValidateItems(items)}, nil
}
