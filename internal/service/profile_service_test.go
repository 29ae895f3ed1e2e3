package service

import (
	"context"
	"testing"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"
	"fitforge/fitness-planner/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSaveProfile_DerivesFitnessLevel(t *testing.T) {
	userID := primitive.NewObjectID()

	var upserted *domain.UserProfile
	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { upserted = args.Get(1).(*domain.UserProfile) }).
		Return(&domain.UserProfile{ID: primitive.NewObjectID(), UserID: userID}, nil)

	svc := NewProfileService(profileRepo)

	_, err := svc.SaveProfile(context.Background(), userID, ProfileInput{
		Goal:            "strength",
		WorkoutsPerWeek: 5,
		Equipment:       []string{"barbell", "squat_rack"},
	})
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, 4, upserted.FitnessLevel, "five sessions a week derives level 4")
	assert.Equal(t, domain.GoalStrength, upserted.Goal)
}

func TestSaveProfile_RejectsInvalidInput(t *testing.T) {
	userID := primitive.NewObjectID()
	profileRepo := new(mocks.ProfileRepository)
	svc := NewProfileService(profileRepo)

	tests := []struct {
		name  string
		input ProfileInput
	}{
		{"unknown goal", ProfileInput{Goal: "bulking", WorkoutsPerWeek: 3, Equipment: []string{"dumbbells"}}},
		{"zero workouts", ProfileInput{Goal: "strength", WorkoutsPerWeek: 0, Equipment: []string{"dumbbells"}}},
		{"too many workouts", ProfileInput{Goal: "strength", WorkoutsPerWeek: 8, Equipment: []string{"dumbbells"}}},
		{"no equipment", ProfileInput{Goal: "strength", WorkoutsPerWeek: 3}},
		{"unknown equipment", ProfileInput{Goal: "strength", WorkoutsPerWeek: 3, Equipment: []string{"hoverboard"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveProfile(context.Background(), userID, tt.input)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
	profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetProfile_NotFound(t *testing.T) {
	userID := primitive.NewObjectID()

	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("GetByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

	svc := NewProfileService(profileRepo)

	_, err := svc.GetProfile(context.Background(), userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
