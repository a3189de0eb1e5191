package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const transcribePrompt = `Transcribe ALL text visible in this document image, in reading order.
The document is a Brazilian utility invoice; keep numbers, dates and the
numeric payment line exactly as printed. Return only the transcribed text,
with no commentary and no markdown.`

// Gemini recognizes text by sending the page image to a Gemini vision model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates the Gemini-backed engine.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Recognize uploads the PNG page and asks the model for a full transcription.
// The API reports no character-level confidence, so 0 is returned.
func (g *Gemini) Recognize(ctx context.Context, imagePath, language string) (string, float64, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", 0, fmt.Errorf("reading page image: %w", err)
	}

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", imageData),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", 0, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", 0, fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return strings.TrimSpace(sb.String()), 0, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
