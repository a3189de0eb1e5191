// Package pipeline orchestrates text acquisition and field extraction for a
// single invoice PDF: embedded text first, then a bounded OCR fallback when
// the document looks like a scanned image.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hfprocessos/fatura-engine/internal/extract"
	"github.com/hfprocessos/fatura-engine/internal/logger"
	"github.com/hfprocessos/fatura-engine/internal/models"
	"github.com/hfprocessos/fatura-engine/internal/ocr"
	"github.com/hfprocessos/fatura-engine/internal/pdftext"
)

// PageSource is the slice of a PDF the pipeline needs: page count, per-page
// embedded text, and per-page rasterization.
type PageSource interface {
	NumPages() int
	PageText(page int) (string, error)
	RenderPagePNG(page, dpi int) ([]byte, error)
	Close() error
}

// OpenFunc opens a PDF from memory.
type OpenFunc func(pdfData []byte) (PageSource, error)

// OCR is CPU-bound; one run per process, shared by every Engine instance.
var sharedSession = &ocr.Session{}

// Engine is the single entry point the rest of the system calls.
type Engine struct {
	cfg          *models.Config
	ocrEngine    ocr.Engine
	preprocessor *ocr.Preprocessor
	open         OpenFunc
	session      *ocr.Session
	log          zerolog.Logger
}

// New builds an Engine. ocrEngine may be nil, in which case the OCR fallback
// is disabled and short documents are processed with whatever embedded text
// they have.
func New(cfg *models.Config, ocrEngine ocr.Engine) *Engine {
	e := &Engine{
		cfg:       cfg,
		ocrEngine: ocrEngine,
		open: func(pdfData []byte) (PageSource, error) {
			return pdftext.Open(pdfData)
		},
		session: sharedSession,
		log:     logger.WithComponent("pipeline"),
	}
	if cfg.OCR.Preprocess {
		pre := ocr.NewPreprocessor()
		if pre.Available() {
			e.preprocessor = pre
		} else {
			e.log.Warn().Msg("ImageMagick not found, page preprocessing disabled")
		}
	}
	return e
}

var whitespace = regexp.MustCompile(`\s+`)

// Extract processes one PDF end to end and returns the best-effort result.
// "Nothing recognized" is a normal outcome reported via Found=false, not an
// error; errors are reserved for unreadable input.
func (e *Engine) Extract(ctx context.Context, pdfData []byte) (*models.Response, error) {
	doc, err := e.open(pdfData)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	defer doc.Close()

	text, err := e.embeddedText(doc)
	if err != nil {
		return nil, err
	}

	// Little embedded text means the PDF is probably a scanned image.
	compact := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	usedOCR := false
	if len(compact) < e.cfg.Text.MinChars && e.ocrEngine != nil {
		e.log.Info().Int("chars", len(compact)).Msg("embedded text below threshold, trying OCR")
		if ocrText := e.runOCR(ctx, doc); ocrText != "" && len(strings.TrimSpace(ocrText)) > len(compact) {
			text = ocrText
			usedOCR = true
		}
	}

	if strings.TrimSpace(text) == "" {
		return &models.Response{
			Found:            false,
			ExtractionResult: models.ExtractionResult{Provider: models.ProviderUnknown},
			UsedOCR:          usedOCR,
			Message:          "não foi possível extrair texto do PDF",
		}, nil
	}

	provider := extract.Detect(text)
	e.log.Info().Str("concessionaria", string(provider)).Bool("ocr", usedOCR).
		Msg("provider detected")

	result := extract.ForProvider(provider).Extract(text)

	if result != nil && (result.Amount != nil || result.ConsumptionKwh != nil) {
		return &models.Response{
			Found:            true,
			Valid:            true,
			ExtractionResult: *result,
			UsedOCR:          usedOCR,
		}, nil
	}

	// A result without amount or consumption is not Found, but whatever
	// fields it did recover still go out to the caller.
	partial := models.ExtractionResult{Provider: provider}
	if result != nil && !result.Empty() {
		partial = *result
	}

	message := "não foi possível extrair dados da fatura"
	if usedOCR {
		message = "PDF escaneado detectado; OCR executado, mas não foi possível extrair todos os dados"
	}
	return &models.Response{
		Found:            false,
		ExtractionResult: partial,
		UsedOCR:          usedOCR,
		Message:          message,
	}, nil
}

// embeddedText concatenates the text layer of up to the configured number of
// pages; extra pages are skipped silently.
func (e *Engine) embeddedText(doc PageSource) (string, error) {
	pages := doc.NumPages()
	if pages > e.cfg.Text.MaxPages {
		pages = e.cfg.Text.MaxPages
	}

	var sb strings.Builder
	for i := 0; i < pages; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// runOCR rasterizes up to the configured number of pages and feeds them to
// the recognition backend, one page at a time, each bounded by its own
// timeout. A page that fails or times out is skipped; the document carries
// on. Returns "" when the single-flight session is busy or nothing was
// recognized.
func (e *Engine) runOCR(ctx context.Context, doc PageSource) string {
	if !e.session.TryAcquire() {
		e.log.Info().Msg("OCR already in progress, skipping to avoid overload")
		return ""
	}
	defer e.session.Release()

	pages := doc.NumPages()
	if pages > e.cfg.OCR.MaxPages {
		e.log.Warn().Int("pages", doc.NumPages()).Int("cap", e.cfg.OCR.MaxPages).
			Msg("page count above OCR cap, processing first pages only")
		pages = e.cfg.OCR.MaxPages
	}

	var sb strings.Builder
	for i := 0; i < pages; i++ {
		text, err := e.ocrPage(ctx, doc, i)
		if err != nil {
			e.log.Warn().Err(err).Int("page", i).Msg("OCR page failed, skipping")
			continue
		}
		if strings.TrimSpace(text) != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	out := sb.String()
	e.log.Info().Int("chars", len(out)).Msg("OCR finished")
	return out
}

// ocrPage renders one page to a temp file and races recognition against the
// per-page deadline. The temp file is always removed.
func (e *Engine) ocrPage(ctx context.Context, doc PageSource, page int) (string, error) {
	imageData, err := doc.RenderPagePNG(page, e.cfg.OCR.DPI)
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	if e.preprocessor != nil {
		imageData = e.preprocessor.Enhance(imageData)
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("hf_ocr_page_%d_%s.png", page, uuid.NewString()))
	if err := os.WriteFile(tmpPath, imageData, 0o644); err != nil {
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	defer os.Remove(tmpPath)

	pageCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.OCR.PageTimeout))
	defer cancel()

	type recognized struct {
		text string
		conf float64
		err  error
	}
	done := make(chan recognized, 1)
	go func() {
		text, conf, err := e.ocrEngine.Recognize(pageCtx, tmpPath, e.cfg.OCR.Language)
		done <- recognized{text, conf, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		e.log.Debug().Int("page", page).Int("chars", len(r.text)).
			Float64("confidence", r.conf).Msg("OCR page recognized")
		return r.text, nil
	case <-pageCtx.Done():
		// Stalled backend: drop this page's result and move on.
		return "", fmt.Errorf("OCR timeout on page %d: %w", page, pageCtx.Err())
	}
}
