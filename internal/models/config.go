package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from yaml in the human
// notation ("30s", "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config represents the engine configuration.
type Config struct {
	Text TextConfig `yaml:"text"`
	OCR  OCRConfig  `yaml:"ocr"`
	Log  LogConfig  `yaml:"log"`
}

// TextConfig bounds the embedded-text extraction stage.
type TextConfig struct {
	// MaxPages caps how many pages are read for embedded text; energy
	// invoices never exceed a handful of pages.
	MaxPages int `yaml:"max_pages"`
	// MinChars is the threshold below which the document is presumed to be a
	// scanned image and OCR is attempted.
	MinChars int `yaml:"min_chars"`
}

// OCRConfig represents OCR-specific configuration.
type OCRConfig struct {
	Engine   string `yaml:"engine"`   // "tesseract" or "gemini"
	Language string `yaml:"language"` // OCR language (default: "por")

	// MaxPages caps how many pages are rasterized and recognized.
	MaxPages int `yaml:"max_pages"`
	// PageTimeout bounds a single page's recognition; a stalled page is
	// skipped, not fatal.
	PageTimeout Duration `yaml:"page_timeout"`
	// DPI used when rasterizing pages; high values help recognition.
	DPI int `yaml:"dpi"`
	// Preprocess runs the ImageMagick cleanup pipeline over each page image
	// before recognition.
	Preprocess bool `yaml:"preprocess"`

	// Gemini backend settings.
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

// LogConfig mirrors the zerolog setup knobs.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			MaxPages: 5,
			MinChars: 100,
		},
		OCR: OCRConfig{
			Engine:      "tesseract",
			Language:    "por",
			MaxPages:    3,
			PageTimeout: Duration(30 * time.Second),
			DPI:         300,
			Preprocess:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a yaml config file and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables if present
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.OCR.GeminiAPIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.OCR.GeminiModel = model
	}
	if engine := os.Getenv("OCR_ENGINE"); engine != "" {
		config.OCR.Engine = engine
	}
	if lang := os.Getenv("OCR_LANGUAGE"); lang != "" {
		config.OCR.Language = lang
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}

	return config, nil
}
