package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is the weekly container entity, keyed by (user, week start).
// Regenerating a plan for the same week replaces the previous one wholesale.
type WorkoutPlan struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	WeekStartDate     time.Time          `bson:"weekStartDate" json:"weekStartDate"` // Always a Sunday, midnight UTC
	EquipmentNeeded   []string           `bson:"equipmentNeeded,omitempty" json:"equipmentNeeded,omitempty"`
	GeneralGuidelines []string           `bson:"generalGuidelines,omitempty" json:"generalGuidelines,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the plan before persistence.
func (p *WorkoutPlan) Validate() error {
	if p.UserID == primitive.NilObjectID {
		return errors.New("workout plan requires a user")
	}
	if p.WeekStartDate.IsZero() {
		return errors.New("workout plan requires a week start date")
	}
	return ValidateEquipment(p.EquipmentNeeded)
}

// DailyWorkout is one calendar day's session within a WorkoutPlan.
// At most one workout exists per (plan, day).
type DailyWorkout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutPlanID primitive.ObjectID `bson:"workoutPlanId" json:"workoutPlanId"`
	Day           string             `bson:"day" json:"day"` // Day name, e.g. "Monday"
	Focus         string             `bson:"focus" json:"focus"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Duration      string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Intensity     int                `bson:"intensity" json:"intensity"` // 1-10
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Sent          bool               `bson:"sent" json:"sent"`
	SentAt        *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the daily workout before persistence.
func (w *DailyWorkout) Validate() error {
	if w.Day == "" {
		return errors.New("daily workout requires a day")
	}
	if w.Intensity < 1 || w.Intensity > 10 {
		return fmt.Errorf("daily workout intensity %d out of range 1-10", w.Intensity)
	}
	return nil
}

// DefaultRestTime is applied when an exercise specification omits the rest
// interval.
const DefaultRestTime = "60 seconds"

// ExerciseSet binds one Exercise to one DailyWorkout with the day's
// parameters. Owned by the DailyWorkout and removed with it.
type ExerciseSet struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DailyWorkoutID primitive.ObjectID `bson:"dailyWorkoutId" json:"dailyWorkoutId"`
	ExerciseID     primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets           int                `bson:"sets" json:"sets"`
	Reps           string             `bson:"reps" json:"reps"` // Free-form: numeric range or duration
	RestTime       string             `bson:"restTime" json:"restTime"`
	Weight         string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the set before persistence.
func (s *ExerciseSet) Validate() error {
	if s.Sets < 1 {
		return errors.New("exercise set requires a positive set count")
	}
	if s.Reps == "" {
		return errors.New("exercise set requires reps")
	}
	return nil
}
