package llm

import (
	"bufio"         // Line-wise reading of the provider stream
	"context"       // Cancellation of the provider call
	"encoding/json" // Parsing provider stream chunks
	"fmt"           // Error formatting
	"io"            // Bounded reads of error bodies
	"net/http"      // HTTP status codes
	"strings"       // Line trimming and prefix checks

	"github.com/go-resty/resty/v2" // HTTP client for the provider API
)

// Message is one role-tagged entry of a chat conversation.
type Message struct {
	Role    string `json:"role"`    // system, user or assistant
	Content string `json:"content"` // Message text
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	rest  *resty.Client // Underlying HTTP client
	model string        // Model name sent with every request
}

// New builds a provider client for the given base URL, API key and model.
func New(baseURL, apiKey, model string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).              // e.g. https://api.openai.com/v1
		SetAuthToken(apiKey).             // Bearer token auth
		SetHeader("Content-Type", "application/json")
	return &Client{rest: rc, model: model}
}

// chatRequest is the provider request body.
type chatRequest struct {
	Model    string    `json:"model"`    // Model name
	Messages []Message `json:"messages"` // Full conversation including the system prompt
	Stream   bool      `json:"stream"`   // Always true here
}

// streamChunk is one parsed data: chunk of the provider stream.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"` // Incremental content fragment
		} `json:"delta"`
	} `json:"choices"`
}

// StreamChat issues a streaming chat completion and invokes onDelta for every
// content fragment the provider emits, in arrival order. It returns when the
// provider signals [DONE], the stream ends, ctx is cancelled, or onDelta
// returns an error.
func (c *Client) StreamChat(ctx context.Context, messages []Message, onDelta func(string) error) error {
	resp, err := c.rest.R().
		SetContext(ctx).                                         // Honor the caller's timeout
		SetBody(chatRequest{Model: c.model, Messages: messages, Stream: true}).
		SetDoNotParseResponse(true).                             // Keep the raw body for incremental reads
		Post("/chat/completions")
	if err != nil {
		return err // Connection-level or context error
	}
	body := resp.RawBody()
	defer body.Close()

	// Non-2xx responses carry a JSON error body, not a stream
	if resp.StatusCode() != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(body, 4096)) // Bounded read of the error body
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(b)))
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // Provider chunks can exceed the default line limit
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue // Blank separators between frames
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		if payload == "[DONE]" {
			return nil // Provider signalled normal end of stream
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // Skip malformed chunks
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			if err := onDelta(chunk.Choices[0].Delta.Content); err != nil {
				return err // Caller aborted the relay
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err() // Cancellation surfaces as the context error
		}
		return err // Read failure mid-stream
	}
	return nil // Stream ended without an explicit [DONE]
}
