package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/philippgille/chromem-go"
	"google.golang.org/api/option"
)

// NewGeminiEmbeddingFunc returns a chromem EmbeddingFunc backed by the Google
// Generative AI embeddings API (default model text-embedding-004). The same
// function is used for indexing and querying so vectors stay comparable.
func NewGeminiEmbeddingFunc(ctx context.Context, apiKey, model string) (chromem.EmbeddingFunc, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY for embeddings")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	em := client.EmbeddingModel(model)

	return func(ctx context.Context, text string) ([]float32, error) {
		resp, err := em.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return nil, err
		}
		if resp.Embedding == nil {
			return nil, fmt.Errorf("no embedding returned")
		}
		return resp.Embedding.Values, nil
	}, nil
}
