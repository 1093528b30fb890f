// Package enhancer rewrites diary text in a cuter voice using a hosted
// generative model. Enhancement is best effort: on any failure the caller
// gets its original text back.
package enhancer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-3-flash-preview"
	temperature  = 0.8
)

// Enhancer rewrites text. Implementations must return text unchanged
// rather than fail.
type Enhancer interface {
	Enhance(ctx context.Context, text string) string
}

// NopEnhancer is used when no model is available.
type NopEnhancer struct{}

func (NopEnhancer) Enhance(_ context.Context, text string) string { return text }

// generator is the part of *genai.Models the enhancer calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiEnhancer struct {
	models generator
	model  string
	logger logging.Logger
}

// NewGeminiEnhancer builds a client for the Gemini API. An empty apiKey
// lets the SDK fall back to the GEMINI_API_KEY / GOOGLE_API_KEY environment
// variables.
func NewGeminiEnhancer(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiEnhancer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGeminiEnhancer(client.Models, model, logger), nil
}

func newGeminiEnhancer(models generator, model string, logger logging.Logger) *GeminiEnhancer {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiEnhancer{models: models, model: model, logger: logger.With("component", "enhancer")}
}

// Enhance returns the model's rewrite of text, or text itself when the text
// is blank, the call fails, or the model answers with nothing.
func (e *GeminiEnhancer) Enhance(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	resp, err := e.models.GenerateContent(ctx, e.model, genai.Text(Prompt(text)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](temperature),
	})
	if err != nil {
		e.logger.Warn(ctx, "enhancement failed, keeping original text", "error", err)
		return text
	}

	var out string
	if resp != nil {
		out = strings.TrimSpace(resp.Text())
	}
	if out == "" {
		e.logger.Warn(ctx, "enhancement returned no text, keeping original text")
		return text
	}
	return out
}

// Prompt wraps text in the fixed styling instruction.
func Prompt(text string) string {
	return "Transform the following diary entry into a super cute, aesthetic, \"kawaii\" version " +
		"suitable for a My Melody themed app. Keep the original meaning but add cute emoji and " +
		"a soft, friendly tone: \"" + text + "\""
}
