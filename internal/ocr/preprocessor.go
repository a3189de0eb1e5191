package ocr

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hfprocessos/fatura-engine/internal/logger"
)

// Preprocessor enhances rasterized invoice pages before recognition:
// grayscale, auto-contrast, light denoise and sharpening help with the small
// print and the payment line digits on scanned bills.
type Preprocessor struct{}

// NewPreprocessor creates an image preprocessor backed by ImageMagick.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Available reports whether an ImageMagick binary is on PATH.
func (p *Preprocessor) Available() bool {
	return magickCommand() != ""
}

// Enhance runs the ImageMagick cleanup pipeline over a PNG page. Any failure
// falls back to the original image; preprocessing is best effort and must
// never cost a page.
func (p *Preprocessor) Enhance(imageData []byte) []byte {
	log := logger.WithComponent("preprocessor")

	binary := magickCommand()
	if binary == "" {
		return imageData
	}

	tmpDir := os.TempDir()
	inputFile := filepath.Join(tmpDir, fmt.Sprintf("hf_pre_in_%s.png", uuid.NewString()))
	outputFile := filepath.Join(tmpDir, fmt.Sprintf("hf_pre_out_%s.png", uuid.NewString()))

	if err := os.WriteFile(inputFile, imageData, 0o644); err != nil {
		return imageData
	}
	defer os.Remove(inputFile)
	defer os.Remove(outputFile)

	args := []string{
		inputFile,
		// Convert to grayscale for better text contrast
		"-colorspace", "Gray",
		// Normalize histogram (auto-contrast)
		"-normalize",
		"-contrast-stretch", "2%x1%",
		// Light denoise
		"-despeckle",
		// Sharpen text edges
		"-sharpen", "0x1",
		outputFile,
	}

	cmd := exec.Command(binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Warn().Err(err).Str("stderr", stderr.String()).Msg("ImageMagick failed, using original image")
		return imageData
	}

	processed, err := os.ReadFile(outputFile)
	if err != nil {
		return imageData
	}

	log.Debug().Int("before", len(imageData)).Int("after", len(processed)).Msg("page image enhanced")
	return processed
}

// magickCommand resolves 'magick' (ImageMagick 7) or 'convert' (ImageMagick 6).
func magickCommand() string {
	if _, err := exec.LookPath("magick"); err == nil {
		return "magick"
	}
	if _, err := exec.LookPath("convert"); err == nil {
		return "convert"
	}
	return ""
}
