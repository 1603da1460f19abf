package reflection

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIGenerator calls the Gemini API through the Google GenAI SDK.
type GenAIGenerator struct {
	client  *genai.Client
	initErr error
}

var _ Generator = (*GenAIGenerator)(nil)

// GenAIOption customises the client config.
type GenAIOption func(*genai.ClientConfig)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) GenAIOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = url
	}
}

// NewGenAIGenerator creates a generator. It never fails: a missing key or a
// client construction error is remembered and returned by every Generate,
// which the Fetcher turns into the fallback phrase.
func NewGenAIGenerator(ctx context.Context, apiKey string, opts ...GenAIOption) *GenAIGenerator {
	if apiKey == "" {
		return &GenAIGenerator{initErr: fmt.Errorf("GenAI API key is required")}
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return &GenAIGenerator{initErr: fmt.Errorf("failed to create GenAI client: %w", err)}
	}
	return &GenAIGenerator{client: client}
}

// Generate issues one GenerateContent call and returns the response text.
func (g *GenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.initErr != nil {
		return "", g.initErr
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		req.Model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(req.Temperature),
			TopP:        genai.Ptr(req.TopP),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}
