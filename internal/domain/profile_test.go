package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfile() UserProfile {
	return UserProfile{
		Goal:            GoalStrength,
		WorkoutsPerWeek: 3,
		Equipment:       []string{"dumbbells", "bench"},
		FitnessLevel:    3,
	}
}

func TestUserProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserProfile)
		wantErr string
	}{
		{"valid", func(p *UserProfile) {}, ""},
		{"unknown goal", func(p *UserProfile) { p.Goal = "shredding" }, "goal"},
		{"zero workouts", func(p *UserProfile) { p.WorkoutsPerWeek = 0 }, "between 1 and 7"},
		{"too many workouts", func(p *UserProfile) { p.WorkoutsPerWeek = 8 }, "between 1 and 7"},
		{"no equipment", func(p *UserProfile) { p.Equipment = nil }, "equipment"},
		{"bad equipment code", func(p *UserProfile) { p.Equipment = []string{"jetpack"} }, "jetpack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDeriveFitnessLevel(t *testing.T) {
	tests := []struct {
		workouts int
		want     int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 4},
		{6, 5},
		{7, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveFitnessLevel(tt.workouts), "workouts=%d", tt.workouts)
	}
}
