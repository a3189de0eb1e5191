// Command fatura-engine extracts payment and consumption data from Brazilian
// utility invoice PDFs and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hfprocessos/fatura-engine/internal/logger"
	"github.com/hfprocessos/fatura-engine/internal/models"
	"github.com/hfprocessos/fatura-engine/internal/ocr"
	"github.com/hfprocessos/fatura-engine/internal/pipeline"
)

var version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "fatura-engine",
	Short:   "Extração de dados de faturas de energia (boleto, consumo, vencimento)",
	Version: version,
}

var extractCmd = &cobra.Command{
	Use:   "extract [pdf-file]",
	Short: "Extract invoice data from a PDF",
	Long: `Reads the embedded text of the PDF, falls back to OCR when the
document looks like a scanned image, and prints the recovered fields
(valor, vencimento, linha digitável, banco, consumo, nota fiscal,
referência) as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to yaml config file")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := models.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return err
	}
	log := logger.WithComponent("cli")

	pdfData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	backend, cleanup, err := buildOCRBackend(ctx, cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	log.Info().Str("file", args[0]).Int("bytes", len(pdfData)).
		Str("ocr_engine", cfg.OCR.Engine).Msg("processing invoice")

	resp, err := pipeline.New(cfg, backend).Extract(ctx, pdfData)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// buildOCRBackend picks the recognition backend from config. A missing
// backend is not fatal: the pipeline still works on embedded text.
func buildOCRBackend(ctx context.Context, cfg *models.Config) (ocr.Engine, func(), error) {
	log := logger.WithComponent("cli")

	switch cfg.OCR.Engine {
	case "gemini":
		gemini, err := ocr.NewGemini(ctx, cfg.OCR.GeminiAPIKey, cfg.OCR.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return gemini, func() { _ = gemini.Close() }, nil
	case "tesseract", "":
		tess := ocr.NewTesseract()
		if !tess.Available() {
			log.Warn().Msg("tesseract binary not found, OCR fallback disabled")
			return nil, nil, nil
		}
		return tess, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown OCR engine %q", cfg.OCR.Engine)
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
