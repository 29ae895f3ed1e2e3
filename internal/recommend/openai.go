package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitforge/fitness-planner/internal/config"
)

const systemPrompt = "You are a professional personal trainer creating personalized workout plans. " +
	"You must always respond with valid JSON."

// openAIProvider calls a chat-completions style endpoint and requires the
// model's reply to decode into the structured response types. The base URL is
// configurable so any OpenAI-compatible API works.
type openAIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIProvider creates the chat-completions backed provider.
func NewOpenAIProvider(cfg config.AIConfig) Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &openAIProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// --- Wire types for the chat-completions API ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *openAIProvider) GenerateWeeklyPlan(ctx context.Context, profile ProfileSummary) (*WeeklyPlanResponse, error) {
	content, err := p.complete(ctx, weeklyPlanPrompt(profile))
	if err != nil {
		return nil, err
	}

	var resp WeeklyPlanResponse
	if err := decodeContent(content, &resp); err != nil {
		return nil, err
	}
	if len(resp.WeeklyPlan) == 0 || len(resp.WeeklyPlan) > 7 {
		return nil, fmt.Errorf("%w: expected 1-7 day entries, got %d", ErrMalformedResponse, len(resp.WeeklyPlan))
	}
	return &resp, nil
}

func (p *openAIProvider) GenerateDailyWorkout(ctx context.Context, profile ProfileSummary, day string) (*DayEntry, error) {
	content, err := p.complete(ctx, dailyWorkoutPrompt(profile, day))
	if err != nil {
		return nil, err
	}

	var entry DayEntry
	if err := decodeContent(content, &entry); err != nil {
		return nil, err
	}
	if entry.Day == "" {
		entry.Day = day
	}
	return &entry, nil
}

// complete sends one chat-completions request and returns the first choice's
// message content.
func (p *openAIProvider) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", ErrProvider, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d: %s", ErrProvider, httpResp.StatusCode, truncate(respBody, 200))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: decoding completion envelope: %v", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion contained no choices", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// decodeContent parses the model's message content into out. Models sometimes
// wrap JSON in markdown fences despite instructions, so those are stripped
// first.
func decodeContent(content string, out any) error {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// --- Prompt construction ---

func weeklyPlanPrompt(profile ProfileSummary) string {
	return fmt.Sprintf(`Generate a weekly workout plan for a user with the following profile:
Goal: %s
Workouts per week: %d
Available equipment: %s

Please provide a structured JSON response with the following format:
{
    "weekly_plan": [
        {
            "day": "Monday",
            "focus": "Upper Body",
            "description": "Description of the workout",
            "duration": "45-60 minutes",
            "intensity": 4,
            "notes": "Additional notes",
            "exercises": [
                {
                    "name": "Exercise name",
                    "description": "Detailed description of the exercise",
                    "muscle_groups": ["list", "of", "muscle", "groups"],
                    "equipment_needed": ["list", "of", "required", "equipment"],
                    "difficulty_level": 1,
                    "instructions": "Step-by-step instructions",
                    "tips": "Tips for proper form",
                    "sets": 3,
                    "reps": "12-15",
                    "rest": "60 seconds",
                    "weight": "Optional weight",
                    "notes": "Optional notes for this specific set"
                }
            ]
        }
    ],
    "equipment_needed": ["list", "of", "equipment"],
    "general_guidelines": ["list", "of", "guidelines"]
}`, profile.Goal, profile.WorkoutsPerWeek, strings.Join(profile.Equipment, ", "))
}

func dailyWorkoutPrompt(profile ProfileSummary, day string) string {
	return fmt.Sprintf(`Generate a workout for %s for a user with the following profile:
Goal: %s
Available equipment: %s

Please provide a structured JSON response with the following format:
{
    "day": "%s",
    "focus": "Workout focus",
    "description": "Description of the workout",
    "duration": "45-60 minutes",
    "intensity": 4,
    "notes": "Additional notes",
    "exercises": [
        {
            "name": "Exercise name",
            "description": "Detailed description of the exercise",
            "muscle_groups": ["list", "of", "muscle", "groups"],
            "equipment_needed": ["list", "of", "required", "equipment"],
            "difficulty_level": 1,
            "instructions": "Step-by-step instructions",
            "tips": "Tips for proper form",
            "sets": 3,
            "reps": "12-15",
            "rest": "60 seconds",
            "weight": "Optional weight",
            "notes": "Optional notes for this specific set"
        }
    ]
}`, day, profile.Goal, strings.Join(profile.Equipment, ", "), day)
}
