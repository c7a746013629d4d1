package embedder

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
)

// geminiDimensions is the vector length produced by text-embedding-004.
const geminiDimensions = 768

// Gemini implements embedding.Provider over the Gemini embedding API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed provider.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", embedding.ErrEncodeFailed)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Encode requests an embedding for text from the configured model.
func (g *Gemini) Encode(ctx context.Context, text string) (embedding.Vector, error) {
	em := g.client.EmbeddingModel(g.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", embedding.ErrEncodeFailed, err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", embedding.ErrEncodeFailed)
	}
	return embedding.Vector(res.Embedding.Values), nil
}

// Dimensions returns the embedding length for the configured model.
func (g *Gemini) Dimensions() int {
	return geminiDimensions
}

// Model identifies the underlying model.
func (g *Gemini) Model() string {
	return g.model
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
