package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentIsValid(t *testing.T) {
	for _, e := range AllEquipment() {
		assert.True(t, e.IsValid(), "vocabulary code %q should be valid", e)
	}
	assert.False(t, Equipment("treadmill").IsValid())
	assert.False(t, Equipment("").IsValid())
	assert.False(t, Equipment("Dumbbells").IsValid(), "codes are case sensitive")
}

func TestValidateEquipment(t *testing.T) {
	assert.NoError(t, ValidateEquipment(nil))
	assert.NoError(t, ValidateEquipment([]string{"barbell", "yoga_mat"}))

	err := ValidateEquipment([]string{"barbell", "hoverboard"})
	assert.ErrorContains(t, err, "hoverboard")
}

func TestEquipmentLabels(t *testing.T) {
	assert.Equal(t, "Bodyweight Only, Pull-up Bar", EquipmentLabels([]string{"bodyweight", "pull_up_bar"}))
	// Unknown codes fall back to the raw value rather than disappearing.
	assert.Equal(t, "mystery", EquipmentLabels([]string{"mystery"}))
}

func TestAllEquipmentIsSorted(t *testing.T) {
	all := AllEquipment()
	assert.Len(t, all, 12)
	for i := 1; i < len(all); i++ {
		assert.Less(t, string(all[i-1]), string(all[i]))
	}
}

func TestGoalIsValid(t *testing.T) {
	valid := []Goal{GoalStrength, GoalEndurance, GoalFlexibility, GoalWeightLoss, GoalGeneralFitness}
	for _, g := range valid {
		assert.True(t, g.IsValid(), "goal %q", g)
	}
	assert.False(t, Goal("bulking").IsValid())
	assert.False(t, Goal("").IsValid())
}
