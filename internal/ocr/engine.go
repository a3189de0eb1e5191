// Package ocr holds the recognition backends and the single-flight session
// guard that keeps at most one OCR run in flight per process.
package ocr

import "context"

// Engine recognizes text in an image file on disk. Implementations must
// honor ctx cancellation; confidence is 0..100 and may be 0 when the backend
// does not report one.
type Engine interface {
	Recognize(ctx context.Context, imagePath, language string) (text string, confidence float64, err error)
}
