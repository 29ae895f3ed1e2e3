package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile carries the fitness attributes captured during onboarding.
// One-to-one with User; it drives prompt construction for the
// recommendation provider.
type UserProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"` // Unique
	Goal             Goal               `bson:"goal" json:"goal"`
	WorkoutsPerWeek  int                `bson:"workoutsPerWeek" json:"workoutsPerWeek"` // 1-7
	Equipment        []string           `bson:"equipment" json:"equipment"`             // Subset of the equipment vocabulary
	FitnessLevel     int                `bson:"fitnessLevel" json:"fitnessLevel"`       // 1-5, derived from training volume
	PhoneNumber      string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	WhoopAccessToken string             `bson:"whoopAccessToken,omitempty" json:"-"` // Recovery integration; never exposed
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the profile's enumerated and ranged fields.
func (p *UserProfile) Validate() error {
	if !p.Goal.IsValid() {
		return fmt.Errorf("unknown goal %q", p.Goal)
	}
	if p.WorkoutsPerWeek < 1 || p.WorkoutsPerWeek > 7 {
		return errors.New("workouts per week must be between 1 and 7")
	}
	if len(p.Equipment) == 0 {
		return errors.New("at least one equipment choice is required")
	}
	return ValidateEquipment(p.Equipment)
}

// DeriveFitnessLevel maps weekly training volume onto the 1-5 level scale.
func DeriveFitnessLevel(workoutsPerWeek int) int {
	switch {
	case workoutsPerWeek <= 1:
		return 1
	case workoutsPerWeek <= 2:
		return 2
	case workoutsPerWeek <= 4:
		return 3
	case workoutsPerWeek <= 5:
		return 4
	default:
		return 5
	}
}
