package llm

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// lmStudioKeyEnvVars are checked in order. LM Studio ignores the key, but the
// OpenAI client refuses to send requests without one.
var lmStudioKeyEnvVars = []string{"JARVIS_LMSTUDIO_API_KEY", "LMSTUDIO_API_KEY", "OPENAI_API_KEY"}

// LMStudioClient talks to a local LM Studio server through its
// OpenAI-compatible endpoint.
type LMStudioClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewLMStudioClient creates a client for model served at baseURL.
func NewLMStudioClient(model, baseURL string) (*LMStudioClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	c := &LMStudioClient{model: model, baseURL: baseURL}
	c.client = openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(lmStudioAPIKey()),
	)
	return c, nil
}

func lmStudioAPIKey() string {
	for _, name := range lmStudioKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return "lm-studio"
}

// Chat sends messages to the local model and returns its reply.
func (c *LMStudioClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return completeChat(ctx, c.client, c.model, messages)
}

// ChatJSON sends messages and decodes the JSON document in the reply.
func (c *LMStudioClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}
