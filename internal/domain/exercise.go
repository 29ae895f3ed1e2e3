package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a reusable exercise definition. Its identity is the
// (name, muscle groups) pair: the first plan that references an unknown
// combination creates it, every later reference reuses the same row.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	MuscleKey    string             `bson:"muscleKey" json:"-"` // Normalized muscle-group set; unique together with Name
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroups []string           `bson:"muscleGroups" json:"muscleGroups"`
	Equipment    []string           `bson:"equipment,omitempty" json:"equipment,omitempty"` // Codes from the equipment vocabulary
	Difficulty   int                `bson:"difficulty" json:"difficulty"`                   // 1-5
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Tips         string             `bson:"tips,omitempty" json:"tips,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MuscleKey normalizes a muscle-group list into the canonical identity form:
// lowercased, trimmed, sorted and joined with "|". Order and casing in the
// source data therefore never split one exercise into two rows.
func MuscleKey(muscleGroups []string) string {
	normalized := make([]string, 0, len(muscleGroups))
	for _, g := range muscleGroups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			normalized = append(normalized, g)
		}
	}
	sort.Strings(normalized)
	return strings.Join(normalized, "|")
}

// Validate checks the exercise before persistence.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("exercise name is required")
	}
	if e.Difficulty < 1 || e.Difficulty > 5 {
		return fmt.Errorf("exercise difficulty %d out of range 1-5", e.Difficulty)
	}
	return ValidateEquipment(e.Equipment)
}
