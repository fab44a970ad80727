// Package llm adapts hosted language models to the advice.Generator interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carbon_netzero/internal/advice"

	"google.golang.org/genai"
)

// ErrEmptyResponse is reported when the model returns no text, e.g. when
// every candidate was blocked.
var ErrEmptyResponse = errors.New("model returned no text")

// contentGenerator is the slice of *genai.Models the adapter uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options tunes generation requests.
type Options struct {
	// JSONMode asks the model for an application/json response.
	JSONMode    bool
	Temperature *float32
}

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	models contentGenerator
	opts   Options
}

// NewGemini creates a client for the Gemini API.
func NewGemini(ctx context.Context, apiKey string, opts Options) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{models: client.Models, opts: opts}, nil
}

// Generate sends prompt to model and returns the response text. Failures are
// reported as *advice.ProviderError.
func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), g.config())
	if err != nil {
		return "", toProviderError(err)
	}
	if resp == nil {
		return "", &advice.ProviderError{Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		msg := ErrEmptyResponse.Error()
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			msg += ": blocked (" + string(resp.PromptFeedback.BlockReason) + ")"
		}
		return "", &advice.ProviderError{Message: msg, Err: ErrEmptyResponse}
	}
	return text, nil
}

func (g *Gemini) config() *genai.GenerateContentConfig {
	if !g.opts.JSONMode && g.opts.Temperature == nil {
		return nil
	}
	cfg := &genai.GenerateContentConfig{Temperature: g.opts.Temperature}
	if g.opts.JSONMode {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// toProviderError maps genai API errors onto the status-carrying error the
// invoker classifies. Transport errors keep their chain so timeouts are
// still recognized.
func toProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &advice.ProviderError{Status: apiErr.Code, Message: apiMessage(apiErr), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &advice.ProviderError{Status: apiErrPtr.Code, Message: apiMessage(*apiErrPtr), Err: err}
	}
	return &advice.ProviderError{Message: err.Error(), Err: err}
}

func apiMessage(e genai.APIError) string {
	if e.Status == "" {
		return e.Message
	}
	return e.Status + ": " + e.Message
}
