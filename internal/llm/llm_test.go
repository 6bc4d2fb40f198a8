package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/superpresidznt/jarvis/internal/review"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"goals": []}`,
			expected: `{"goals": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the response: {"goals": [{"goal": "test"}]}`,
			expected: `{"goals": [{"goal": "test"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"goals\": []}\n```",
			expected: `{"goals": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"goals\": []}\n```",
			expected: `{"goals": []}`,
		},
		{
			name:     "json array",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name:     "no json",
			input:    "nothing here",
			expected: "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// fakeClient replays a canned reply and records the prompt it was given.
type fakeClient struct {
	reply    string
	err      error
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	out, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(out)), result)
}

func testReport() *review.Report {
	return &review.Report{
		Period: review.Period{
			Start: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC),
			Kind:  review.PeriodWeekly,
		},
		Tasks:   review.TasksSummary{Completed: 8, Created: 10, CompletionRatePercent: 80},
		Finance: review.FinanceSummary{NetCashFlow: -200, BudgetAdherencePercent: 100},
		Insights: []review.Insight{
			{Category: "Tasks", Type: review.InsightPositive, Message: "You completed 80% of your open tasks (8 done)."},
		},
	}
}

func TestNarrateReview(t *testing.T) {
	client := &fakeClient{reply: "  HEADLINE: Solid week\n"}
	coach := NewCoach(client)

	got, err := coach.NarrateReview(context.Background(), testReport())
	if err != nil {
		t.Fatalf("NarrateReview failed: %v", err)
	}
	if got != "HEADLINE: Solid week" {
		t.Errorf("NarrateReview = %q", got)
	}

	if len(client.messages) != 2 || client.messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", client.messages)
	}
	prompt := client.messages[1].Content
	for _, want := range []string{"weekly review", "-$200.00", "You completed 80%"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNarrateReview_Errors(t *testing.T) {
	boom := errors.New("rate limited")
	if _, err := NewCoach(&fakeClient{err: boom}).NarrateReview(context.Background(), testReport()); !errors.Is(err, boom) {
		t.Errorf("expected client error, got %v", err)
	}
	if _, err := NewCoach(&fakeClient{reply: "   "}).NarrateReview(context.Background(), testReport()); err == nil {
		t.Error("expected error for empty response")
	}
}

func TestSuggestGoals(t *testing.T) {
	client := &fakeClient{reply: "Sure!\n```json\n" + `{"goals": [
		{"category": "Finance", "goal": "Spend less than you earn", "metric": "net cash flow >= 0"},
		{"category": "Tasks", "goal": "", "metric": "ignored"},
		{"category": "Focus", "goal": "Two deep sessions a day", "metric": "10h focus"},
		{"category": "Habits", "goal": "Read daily", "metric": "7 check-ins"},
		{"category": "Pomodoro", "goal": "Finish what you start", "metric": "90%"}
	]}` + "\n```"}

	goals, err := NewCoach(client).SuggestGoals(context.Background(), testReport())
	if err != nil {
		t.Fatalf("SuggestGoals failed: %v", err)
	}
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d: %+v", len(goals), goals)
	}
	if goals[0].Category != "Finance" || goals[2].Goal != "Read daily" {
		t.Errorf("unexpected goals %+v", goals)
	}
}
