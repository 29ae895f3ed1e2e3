package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() ProfileSummary {
	return ProfileSummary{
		Goal:            "general_fitness",
		Equipment:       []string{"Bodyweight Only", "Dumbbells"},
		WorkoutsPerWeek: 3,
	}
}

func TestTemplateProvider_GenerateWeeklyPlan(t *testing.T) {
	provider := NewTemplateProvider()

	resp, err := provider.GenerateWeeklyPlan(context.Background(), testProfile())
	require.NoError(t, err)
	require.Len(t, resp.WeeklyPlan, 4)

	days := make([]string, len(resp.WeeklyPlan))
	for i, entry := range resp.WeeklyPlan {
		days[i] = entry.Day
	}
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday", "Saturday"}, days)

	// Every exercise must be complete: the plan service rejects specs
	// without sets or reps.
	for _, entry := range resp.WeeklyPlan {
		assert.NotEmpty(t, entry.Focus, "day %s", entry.Day)
		assert.GreaterOrEqual(t, entry.Intensity, 1)
		assert.LessOrEqual(t, entry.Intensity, 10)
		require.NotEmpty(t, entry.Exercises, "day %s", entry.Day)
		for _, spec := range entry.Exercises {
			require.NotNil(t, spec.Sets, "%s on %s", spec.Name, entry.Day)
			assert.Positive(t, *spec.Sets)
			assert.NotEmpty(t, spec.Reps, "%s on %s", spec.Name, entry.Day)
			assert.NotEmpty(t, spec.MuscleGroups, "%s on %s", spec.Name, entry.Day)
		}
	}
}

func TestTemplateProvider_IsDeterministic(t *testing.T) {
	provider := NewTemplateProvider()

	first, err := provider.GenerateWeeklyPlan(context.Background(), testProfile())
	require.NoError(t, err)
	second, err := provider.GenerateWeeklyPlan(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTemplateProvider_GuidelinesReflectProfile(t *testing.T) {
	provider := NewTemplateProvider()

	resp, err := provider.GenerateWeeklyPlan(context.Background(), ProfileSummary{
		Goal:            "weight_loss",
		Equipment:       []string{"Kettlebells"},
		WorkoutsPerWeek: 5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GeneralGuidelines)

	assert.Contains(t, resp.GeneralGuidelines[0], "weight loss")
	assert.Contains(t, resp.GeneralGuidelines[0], "5 sessions")
	assert.Contains(t, resp.GeneralGuidelines[1], "Kettlebells")
}

func TestTemplateProvider_GenerateDailyWorkout(t *testing.T) {
	provider := NewTemplateProvider()

	monday, err := provider.GenerateDailyWorkout(context.Background(), testProfile(), "Monday")
	require.NoError(t, err)
	assert.Equal(t, "Monday", monday.Day)
	assert.Equal(t, "Upper Body", monday.Focus)

	// Days outside the canonical week come back as recovery days, never an error.
	tuesday, err := provider.GenerateDailyWorkout(context.Background(), testProfile(), "Tuesday")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", tuesday.Day)
	assert.Equal(t, "Recovery", tuesday.Focus)
	assert.Equal(t, 1, tuesday.Intensity)
	require.Len(t, tuesday.Exercises, 1)
	require.NotNil(t, tuesday.Exercises[0].Sets)
}
