// Package llm is a small provider-neutral client for structured JSON
// generation. Quiz generation is its only caller; every request carries a
// JSON Schema and every response is validated against it before it is
// returned.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model's output. When req.Schema
	// is set, Content is JSON that has already passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider name as configured, e.g. "anthropic".
	Name() string

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema
	MaxTokens int
	// Temperature in 0..1. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Schema:   schema,
	}
}

// Schema is a named JSON Schema. Name is kebab-case; providers use it as
// the tool or response-format name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)
