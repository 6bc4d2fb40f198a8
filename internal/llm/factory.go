package llm

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// ErrUnsupportedProvider is returned for provider names no client handles.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// providerAliases maps accepted spellings to canonical provider names.
var providerAliases = map[string]string{
	"":          ProviderCopilot,
	"copilot":   ProviderCopilot,
	"github":    ProviderCopilot,
	"ollama":    ProviderOllama,
	"lmstudio":  ProviderLMStudio,
	"lm-studio": ProviderLMStudio,
	"llmstudio": ProviderLMStudio,
}

// Providers lists the canonical provider names.
func Providers() []string {
	return []string{ProviderCopilot, ProviderOllama, ProviderLMStudio}
}

// NormalizeProvider resolves a configured provider name to its canonical form.
// Empty means copilot.
func NormalizeProvider(name string) (string, error) {
	p, ok := providerAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %s (want one of %s)", ErrUnsupportedProvider, name, strings.Join(Providers(), ", "))
	}
	return p, nil
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	p, err := NormalizeProvider(provider)
	if err != nil {
		return nil, err
	}
	switch p {
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	default:
		return NewCopilotClient(model)
	}
}
