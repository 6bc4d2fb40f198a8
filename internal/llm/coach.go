package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/superpresidznt/jarvis/internal/export"
	"github.com/superpresidznt/jarvis/internal/review"
)

const coachSystemPrompt = `You are a supportive but direct productivity coach. Output plain text only - no markdown, no code blocks. Be concise.`

const narrativePromptTemplate = `Read this %s and write a short coaching note in EXACTLY this format:

HEADLINE: [ 3-6 word summary ]

WINS:
➜  One sentence on the strongest result, with a number from the data.
➜  One more win, if any.

WATCH:
➜  One sentence on the weakest area, with a number from the data.

NEXT:
➜  One concrete action for the coming period.

Review:
%s

Rules:
- Use only numbers that appear in the review
- Keep each line under 80 characters
- If there is nothing to watch, omit the WATCH section`

const goalsPromptTemplate = `Based on this review, propose up to %d goals for the next period.
Respond with JSON only, in this shape:
{"goals": [{"category": "Tasks|Habits|Focus|Pomodoro|Finance", "goal": "...", "metric": "..."}]}

Review:
%s`

// maxGoals caps how many goals SuggestGoals returns.
const maxGoals = 3

// Goal is a measurable target suggested for the next period.
type Goal struct {
	Category string `json:"category"`
	Goal     string `json:"goal"`
	Metric   string `json:"metric"`
}

type goalsResponse struct {
	Goals []Goal `json:"goals"`
}

// Coach writes narratives about generated reviews.
type Coach struct {
	client Client
}

// NewCoach creates a Coach backed by client.
func NewCoach(client Client) *Coach {
	return &Coach{client: client}
}

// NarrateReview asks the model for a coaching note on r.
func (c *Coach) NarrateReview(ctx context.Context, r *review.Report) (string, error) {
	prompt := fmt.Sprintf(narrativePromptTemplate, strings.ToLower(export.Title(r)), export.Text(r))

	out, err := c.client.Chat(ctx, []Message{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("empty coaching response")
	}
	return out, nil
}

// SuggestGoals asks the model for measurable goals based on r.
func (c *Coach) SuggestGoals(ctx context.Context, r *review.Report) ([]Goal, error) {
	prompt := fmt.Sprintf(goalsPromptTemplate, maxGoals, export.Text(r))

	var resp goalsResponse
	if err := c.client.ChatJSON(ctx, []Message{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: prompt},
	}, &resp); err != nil {
		return nil, err
	}

	goals := make([]Goal, 0, len(resp.Goals))
	for _, g := range resp.Goals {
		if strings.TrimSpace(g.Goal) == "" {
			continue
		}
		goals = append(goals, g)
		if len(goals) == maxGoals {
			break
		}
	}
	return goals, nil
}
