// Package ai proxies resume, portfolio and scoring requests to the
// Gemini API and bundles the supporting fetchers (portfolio pages,
// GitHub code samples, resume file text extraction).
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrNotConfigured is returned when no Gemini API key was provided.
	ErrNotConfigured = errors.New("gemini api key is not configured")

	// ErrMalformedReply is returned when the model reply is not valid JSON.
	ErrMalformedReply = errors.New("model reply is not valid JSON")
)

// Gemini wraps the genai client for JSON-mode content generation.
// A zero key yields an unconfigured instance whose calls fail with
// ErrNotConfigured, letting callers fall back to local heuristics.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Configured reports whether an API key was provided.
func (g *Gemini) Configured() bool {
	return g != nil && g.client != nil
}

// GenerateJSON sends the user parts with a system instruction in JSON
// response mode and returns the model's reply as raw JSON. Markdown
// code fences around the reply are stripped before validation.
func (g *Gemini) GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part) (json.RawMessage, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	cleaned := CleanJSON(resp.Text())
	if !json.Valid([]byte(cleaned)) {
		return nil, ErrMalformedReply
	}

	return json.RawMessage(cleaned), nil
}

// CleanJSON strips a markdown code fence wrapping a JSON reply.
// Models in JSON mode still occasionally emit ```json fences.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
