package recommend

import (
	"context"
	"fmt"
	"strings"
)

// templateProvider returns the same canonical training week for everyone.
// It is the no-network fallback: profile attributes only flow into the
// guidelines text, never into the structure.
type templateProvider struct{}

// NewTemplateProvider creates the deterministic template provider.
func NewTemplateProvider() Provider {
	return &templateProvider{}
}

func intPtr(v int) *int { return &v }

// canonicalWeek is the static plan: three strength/conditioning days plus one
// cardio day, with rest on Sunday, Tuesday and Thursday.
func canonicalWeek() []DayEntry {
	return []DayEntry{
		{
			Day:         "Monday",
			Focus:       "Upper Body",
			Description: "Upper body push/pull session with bodyweight and dumbbell work.",
			Duration:    "45-60 minutes",
			Intensity:   6,
			Notes:       "Warm up 5 minutes before, cool down 5 minutes after.",
			Exercises: []ExerciseSpec{
				{
					Name:         "Push-ups",
					Description:  "Classic push-up from a straight-body plank position.",
					MuscleGroups: []string{"chest", "triceps", "shoulders"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep back straight, elbows close to body.",
					Tips:         "Engage your core throughout the movement.",
					Sets:         intPtr(3),
					Reps:         "10-12",
					Rest:         "60 seconds",
				},
				{
					Name:         "Dumbbell Rows",
					Description:  "Single-arm row with a dumbbell, supported on a bench or knee.",
					MuscleGroups: []string{"back", "biceps"},
					Equipment:    []string{"dumbbells"},
					Difficulty:   2,
					Instructions: "Keep back straight, pull elbows back.",
					Tips:         "Squeeze the shoulder blade at the top.",
					Sets:         intPtr(3),
					Reps:         "12-15",
					Rest:         "60 seconds",
				},
				{
					Name:         "Tricep Dips",
					Description:  "Dips on a bench or sturdy chair.",
					MuscleGroups: []string{"triceps", "shoulders"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep elbows close to body.",
					Tips:         "Lower slowly, avoid shrugging the shoulders.",
					Sets:         intPtr(3),
					Reps:         "10-12",
					Rest:         "60 seconds",
				},
			},
		},
		{
			Day:         "Wednesday",
			Focus:       "Lower Body",
			Description: "Lower body strength session built around squat patterns.",
			Duration:    "45-60 minutes",
			Intensity:   6,
			Notes:       "Warm up 5 minutes before, cool down 5 minutes after.",
			Exercises: []ExerciseSpec{
				{
					Name:         "Squats",
					Description:  "Bodyweight squat to parallel depth.",
					MuscleGroups: []string{"quadriceps", "glutes", "hamstrings"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep knees aligned with toes.",
					Tips:         "Drive through the heels on the way up.",
					Sets:         intPtr(3),
					Reps:         "12-15",
					Rest:         "60 seconds",
				},
				{
					Name:         "Lunges",
					Description:  "Alternating forward lunges.",
					MuscleGroups: []string{"quadriceps", "glutes"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep front knee aligned with ankle.",
					Tips:         "Take a long enough step to keep the shin vertical.",
					Sets:         intPtr(3),
					Reps:         "10 per leg",
					Rest:         "60 seconds",
				},
				{
					Name:         "Calf Raises",
					Description:  "Standing calf raises, full range of motion.",
					MuscleGroups: []string{"calves"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   1,
					Instructions: "Rise onto the balls of the feet, pause, lower slowly.",
					Tips:         "Hold a wall for balance if needed.",
					Sets:         intPtr(3),
					Reps:         "15-20",
					Rest:         "60 seconds",
				},
			},
		},
		{
			Day:         "Friday",
			Focus:       "Full Body",
			Description: "Full body conditioning circuit.",
			Duration:    "45-60 minutes",
			Intensity:   7,
			Notes:       "Move briskly between exercises but keep form strict.",
			Exercises: []ExerciseSpec{
				{
					Name:         "Burpees",
					Description:  "Squat thrust into a jump, full range of motion.",
					MuscleGroups: []string{"full body"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   3,
					Instructions: "Chest to the floor, jump with hips fully extended.",
					Tips:         "Step back instead of jumping back to scale down.",
					Sets:         intPtr(3),
					Reps:         "10",
					Rest:         "60 seconds",
				},
				{
					Name:         "Plank",
					Description:  "Front plank hold on forearms.",
					MuscleGroups: []string{"core"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep body straight from head to heels.",
					Tips:         "Brace as if about to take a punch.",
					Sets:         intPtr(3),
					Reps:         "30-45 seconds",
					Rest:         "60 seconds",
				},
				{
					Name:         "Mountain Climbers",
					Description:  "Running knees-to-chest from a push-up position.",
					MuscleGroups: []string{"core", "shoulders"},
					Equipment:    []string{"bodyweight"},
					Difficulty:   2,
					Instructions: "Keep core engaged, hips level.",
					Tips:         "Slow the pace down rather than letting the hips pike.",
					Sets:         intPtr(3),
					Reps:         "30 seconds",
					Rest:         "60 seconds",
				},
			},
		},
		{
			Day:         "Saturday",
			Focus:       "Cardio & Flexibility",
			Description: "Steady-state cardio followed by stretching.",
			Duration:    "45-60 minutes",
			Intensity:   5,
			Notes:       "Include intervals if you feel fresh.",
			Exercises: []ExerciseSpec{
				{
					Name:         "Running or Cycling",
					Description:  "Moderate-pace steady-state cardio.",
					MuscleGroups: []string{"legs", "cardio"},
					Equipment:    []string{"running_trails"},
					Difficulty:   2,
					Instructions: "Hold a pace where you can still speak in short sentences.",
					Tips:         "Swap in cycling or swimming for lower impact.",
					Sets:         intPtr(1),
					Reps:         "20-30 minutes",
					Rest:         "as needed",
				},
				{
					Name:         "Yoga Stretching",
					Description:  "Static stretching covering the major muscle groups.",
					MuscleGroups: []string{"full body"},
					Equipment:    []string{"yoga_mat"},
					Difficulty:   1,
					Instructions: "Hold each stretch 30-45 seconds.",
					Tips:         "Stretch to mild tension, never to pain.",
					Sets:         intPtr(1),
					Reps:         "15-20 minutes",
					Rest:         "as needed",
				},
			},
		},
	}
}

// restDay is returned for single-day generation on a day the canonical week
// leaves free.
func restDay(day string) *DayEntry {
	return &DayEntry{
		Day:         day,
		Focus:       "Recovery",
		Description: "Rest day. Take it easy and focus on recovery.",
		Duration:    "20-30 minutes",
		Intensity:   1,
		Notes:       "Light movement only.",
		Exercises: []ExerciseSpec{
			{
				Name:         "Walking",
				Description:  "Easy walk at a conversational pace.",
				MuscleGroups: []string{"legs"},
				Equipment:    []string{"bodyweight"},
				Difficulty:   1,
				Instructions: "Keep the effort easy throughout.",
				Sets:         intPtr(1),
				Reps:         "20-30 minutes",
				Rest:         "as needed",
			},
		},
	}
}

func (p *templateProvider) GenerateWeeklyPlan(_ context.Context, profile ProfileSummary) (*WeeklyPlanResponse, error) {
	return &WeeklyPlanResponse{
		WeeklyPlan: canonicalWeek(),
		EquipmentNeeded: []string{
			"bodyweight",
			"dumbbells",
		},
		GeneralGuidelines: []string{
			fmt.Sprintf("This plan targets your %s goal with %d sessions per week.",
				strings.ReplaceAll(profile.Goal, "_", " "), profile.WorkoutsPerWeek),
			fmt.Sprintf("Available equipment: %s.", strings.Join(profile.Equipment, ", ")),
			"Stay hydrated throughout the day.",
			"Warm up properly before each workout and cool down after.",
			"Rest days: Tuesday, Thursday, Sunday.",
		},
	}, nil
}

func (p *templateProvider) GenerateDailyWorkout(_ context.Context, _ ProfileSummary, day string) (*DayEntry, error) {
	for _, entry := range canonicalWeek() {
		if entry.Day == day {
			return &entry, nil
		}
	}
	return restDay(day), nil
}
