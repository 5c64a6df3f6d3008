// Package extract turns a photo of a bill into line items using a
// vision-capable language model.
package extract

import (
	"context"
)

// Client sends a bill image to a model and returns its raw JSON answer.
type Client interface {
	ExtractItems(ctx context.Context, image []byte, mimeType string) (string, error)
}
