package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tesseract runs the tesseract CLI on an image file.
type Tesseract struct{}

// NewTesseract returns the CLI-backed engine.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Available reports whether the tesseract binary can be found on PATH.
// Callers should check it once at startup.
func (t *Tesseract) Available() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// Recognize shells out to tesseract with the page image. The CLI does not
// report a confidence score, so 0 is returned.
func (t *Tesseract) Recognize(ctx context.Context, imagePath, language string) (string, float64, error) {
	if language == "" {
		language = "por"
	}

	cmd := exec.CommandContext(ctx, "tesseract", imagePath, "stdout", "-l", language)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", 0, fmt.Errorf("tesseract failed: %w - %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), 0, nil
}
