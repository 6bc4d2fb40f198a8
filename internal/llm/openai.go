package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog"
)

// completeChat runs one chat completion against an OpenAI-compatible API.
func completeChat(ctx context.Context, client openai.Client, model string, messages []Message) (string, error) {
	began := time.Now()
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               model,
		Messages:            toOpenAIMessages(messages),
		Temperature:         openai.Float(coachTemperature),
		MaxCompletionTokens: openai.Int(maxReplyTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}

	zerolog.Ctx(ctx).Debug().
		Str("model", model).
		Dur("elapsed", time.Since(began)).
		Int64("prompt_tokens", resp.Usage.PromptTokens).
		Int64("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completed")
	return resp.Choices[0].Message.Content, nil
}

// toOpenAIMessages converts messages to OpenAI params. Unknown roles are sent as user.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			out[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			out[i] = openai.UserMessage(msg.Content)
		}
	}
	return out
}
