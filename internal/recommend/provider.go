package recommend

import (
	"context"
	"errors"
	"fmt"

	"fitforge/fitness-planner/internal/config"
)

// Sentinel errors for the two provider failure classes. Callers distinguish
// them with errors.Is: transport/auth problems are retryable upstream
// failures, malformed responses are not.
var (
	ErrProvider          = errors.New("recommendation provider request failed")
	ErrMalformedResponse = errors.New("recommendation provider returned a malformed response")
)

// ProfileSummary is the slice of a user profile that a provider needs to
// build a recommendation.
type ProfileSummary struct {
	Goal            string
	Equipment       []string // Display labels, not codes
	WorkoutsPerWeek int
}

// ExerciseSpec is one exercise prescription inside a day entry.
// Sets is a pointer so an absent value is distinguishable from zero; Sets and
// Reps have no sane default and are required downstream.
type ExerciseSpec struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MuscleGroups []string `json:"muscle_groups"`
	Equipment    []string `json:"equipment_needed"`
	Difficulty   int      `json:"difficulty_level"`
	Instructions string   `json:"instructions"`
	Tips         string   `json:"tips"`
	Sets         *int     `json:"sets"`
	Reps         string   `json:"reps"`
	Rest         string   `json:"rest"`
	Weight       string   `json:"weight"`
	Notes        string   `json:"notes"`
}

// DayEntry is one day's structured workout description.
type DayEntry struct {
	Day         string         `json:"day"`
	Focus       string         `json:"focus"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Intensity   int            `json:"intensity"`
	Notes       string         `json:"notes"`
	Exercises   []ExerciseSpec `json:"exercises"`
}

// WeeklyPlanResponse is a full weekly structure plus the plan-level
// aggregates.
type WeeklyPlanResponse struct {
	WeeklyPlan        []DayEntry `json:"weekly_plan"`
	EquipmentNeeded   []string   `json:"equipment_needed"`
	GeneralGuidelines []string   `json:"general_guidelines"`
}

// Provider generates workout recommendations from a profile summary.
// Implementations: the deterministic template provider and the
// chat-completions backed provider. Both are slow-path calls from the
// caller's perspective and honor ctx cancellation.
type Provider interface {
	GenerateWeeklyPlan(ctx context.Context, profile ProfileSummary) (*WeeklyPlanResponse, error)
	GenerateDailyWorkout(ctx context.Context, profile ProfileSummary, day string) (*DayEntry, error)
}

// NewProvider selects the provider implementation from configuration.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "template":
		return NewTemplateProvider(), nil
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported recommendation provider: %s", cfg.Provider)
	}
}
