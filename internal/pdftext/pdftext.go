// Package pdftext wraps go-fitz to read the embedded text layer of a PDF and
// to rasterize pages for OCR.
package pdftext

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// Document is an open PDF. Not safe for concurrent use; open one per request.
type Document struct {
	doc *fitz.Document
}

// Open loads a PDF from memory.
func Open(pdfData []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Close releases the underlying document.
func (d *Document) Close() error {
	return d.doc.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// PageText extracts the embedded text of a single page (zero-based).
func (d *Document) PageText(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", page, err)
	}
	return text, nil
}

// RenderPagePNG rasterizes a page (zero-based) at the given DPI and returns
// it PNG-encoded. High DPI output reads noticeably better under OCR.
func (d *Document) RenderPagePNG(page, dpi int) ([]byte, error) {
	img, err := d.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page %d: %w", page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
