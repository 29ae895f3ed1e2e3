package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Equipment is a code from the closed equipment vocabulary shared by
// Exercise, WorkoutPlan and UserProfile. Anything outside the vocabulary
// is rejected at validation time.
type Equipment string

const (
	EquipmentBarbell         Equipment = "barbell"
	EquipmentBench           Equipment = "bench"
	EquipmentBodyweight      Equipment = "bodyweight"
	EquipmentDumbbells       Equipment = "dumbbells"
	EquipmentFullGymAccess   Equipment = "full_gym_access"
	EquipmentKettlebells     Equipment = "kettlebells"
	EquipmentPool            Equipment = "pool"
	EquipmentPullUpBar       Equipment = "pull_up_bar"
	EquipmentResistanceBands Equipment = "resistance_bands"
	EquipmentRunningTrails   Equipment = "running_trails"
	EquipmentSquatRack       Equipment = "squat_rack"
	EquipmentYogaMat         Equipment = "yoga_mat"
)

// equipmentLabels maps each code to its human-readable display name.
var equipmentLabels = map[Equipment]string{
	EquipmentBarbell:         "Barbell",
	EquipmentBench:           "Bench",
	EquipmentBodyweight:      "Bodyweight Only",
	EquipmentDumbbells:       "Dumbbells",
	EquipmentFullGymAccess:   "Full Gym Access",
	EquipmentKettlebells:     "Kettlebells",
	EquipmentPool:            "Pool",
	EquipmentPullUpBar:       "Pull-up Bar",
	EquipmentResistanceBands: "Resistance Bands",
	EquipmentRunningTrails:   "Running Trails",
	EquipmentSquatRack:       "Squat Rack",
	EquipmentYogaMat:         "Yoga Mat",
}

// IsValid reports whether the code belongs to the vocabulary.
func (e Equipment) IsValid() bool {
	_, ok := equipmentLabels[e]
	return ok
}

// Label returns the display name for the code, or the raw code if unknown.
func (e Equipment) Label() string {
	if label, ok := equipmentLabels[e]; ok {
		return label
	}
	return string(e)
}

// AllEquipment returns the vocabulary sorted by code.
func AllEquipment() []Equipment {
	all := make([]Equipment, 0, len(equipmentLabels))
	for e := range equipmentLabels {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// ValidateEquipment checks every code against the vocabulary.
func ValidateEquipment(codes []string) error {
	for _, code := range codes {
		if !Equipment(code).IsValid() {
			return fmt.Errorf("unknown equipment code %q", code)
		}
	}
	return nil
}

// EquipmentLabels renders a code list as display names, e.g. for prompts
// and emails.
func EquipmentLabels(codes []string) string {
	labels := make([]string, len(codes))
	for i, code := range codes {
		labels[i] = Equipment(code).Label()
	}
	return strings.Join(labels, ", ")
}

// Goal is a user's enumerated fitness goal.
type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalEndurance      Goal = "endurance"
	GoalFlexibility    Goal = "flexibility"
	GoalWeightLoss     Goal = "weight_loss"
	GoalGeneralFitness Goal = "general_fitness"
)

// IsValid reports whether the goal is one of the enumerated choices.
func (g Goal) IsValid() bool {
	switch g {
	case GoalStrength, GoalEndurance, GoalFlexibility, GoalWeightLoss, GoalGeneralFitness:
		return true
	}
	return false
}
