package mocks

import (
	"context"

	"fitforge/fitness-planner/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileRepository is a testify mock for repository.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, profile)
	var saved *domain.UserProfile
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.UserProfile)
	}
	return saved, args.Error(1)
}

func (m *ProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	var profile *domain.UserProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.UserProfile)
	}
	return profile, args.Error(1)
}
