// Package llm turns generated reviews into coaching narratives using a
// chat-completion provider.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errNoChoices = errors.New("no response choices returned")

const (
	// coachTemperature keeps models close to the review's numbers.
	coachTemperature = 0.3
	// maxReplyTokens bounds a coaching reply.
	maxReplyTokens = 1024
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// decodeJSON extracts the JSON document from an LLM reply and decodes it.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}
