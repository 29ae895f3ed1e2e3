package mocks

import (
	"context"

	"fitforge/fitness-planner/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseRepository is a testify mock for repository.ExerciseRepository.
type ExerciseRepository struct {
	mock.Mock
}

func (m *ExerciseRepository) GetOrCreate(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	args := m.Called(ctx, exercise)
	var resolved *domain.Exercise
	if args.Get(0) != nil {
		resolved = args.Get(0).(*domain.Exercise)
	}
	return resolved, args.Error(1)
}

func (m *ExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Exercise, error) {
	args := m.Called(ctx, ids)
	var result map[primitive.ObjectID]domain.Exercise
	if args.Get(0) != nil {
		result = args.Get(0).(map[primitive.ObjectID]domain.Exercise)
	}
	return result, args.Error(1)
}
