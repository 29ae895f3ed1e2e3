package service

import (
	"context"
	"errors"
	"fmt"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("user has no fitness profile yet")
	ErrInvalidProfile  = errors.New("invalid profile data")
)

// ProfileInput carries the onboarding answers. The fitness level is derived
// from the weekly training volume, never taken from the caller.
type ProfileInput struct {
	Goal             string
	WorkoutsPerWeek  int
	Equipment        []string
	PhoneNumber      string
	WhoopAccessToken string
}

// --- Service Interface ---
type ProfileService interface {
	// SaveProfile creates the user's profile on first call and updates it on
	// subsequent ones.
	SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.UserProfile, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
}

// --- Service Implementation ---

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// SaveProfile validates the onboarding answers and upserts the profile.
func (s *profileService) SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.UserProfile, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	profile := &domain.UserProfile{
		UserID:           userID,
		Goal:             domain.Goal(input.Goal),
		WorkoutsPerWeek:  input.WorkoutsPerWeek,
		Equipment:        input.Equipment,
		FitnessLevel:     domain.DeriveFitnessLevel(input.WorkoutsPerWeek),
		PhoneNumber:      input.PhoneNumber,
		WhoopAccessToken: input.WhoopAccessToken,
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	return s.profileRepo.Upsert(ctx, profile)
}

// GetProfile retrieves the user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
