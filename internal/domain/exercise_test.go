package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMuscleKey(t *testing.T) {
	// Order and casing never split one exercise into two identities.
	a := MuscleKey([]string{"Chest", "Triceps", "shoulders"})
	b := MuscleKey([]string{"shoulders", "chest", "TRICEPS"})
	assert.Equal(t, a, b)
	assert.Equal(t, "chest|shoulders|triceps", a)
}

func TestMuscleKey_DropsEmptyEntries(t *testing.T) {
	assert.Equal(t, "core", MuscleKey([]string{" core ", "", "  "}))
	assert.Equal(t, "", MuscleKey(nil))
}

func TestExerciseValidate(t *testing.T) {
	ex := Exercise{Name: "Push-ups", Difficulty: 2, Equipment: []string{"bodyweight"}}
	assert.NoError(t, ex.Validate())

	ex.Name = ""
	assert.ErrorContains(t, ex.Validate(), "name")

	ex.Name = "Push-ups"
	ex.Difficulty = 6
	assert.ErrorContains(t, ex.Validate(), "difficulty")

	ex.Difficulty = 2
	ex.Equipment = []string{"antigravity"}
	assert.ErrorContains(t, ex.Validate(), "antigravity")
}

func TestExerciseSetValidate(t *testing.T) {
	set := ExerciseSet{Sets: 3, Reps: "10-12", RestTime: DefaultRestTime}
	assert.NoError(t, set.Validate())

	set.Sets = 0
	assert.Error(t, set.Validate())

	set.Sets = 3
	set.Reps = ""
	assert.Error(t, set.Validate())
}
