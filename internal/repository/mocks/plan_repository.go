package mocks

import (
	"context"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanRepository is a testify mock for repository.PlanRepository.
type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) ReplaceForWeek(ctx context.Context, plan *domain.WorkoutPlan, days []repository.DayInsert) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, plan, days)
	var saved *domain.WorkoutPlan
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.WorkoutPlan)
	}
	return saved, args.Error(1)
}

func (m *PlanRepository) AppendDay(ctx context.Context, planID primitive.ObjectID, day repository.DayInsert) (*domain.DailyWorkout, error) {
	args := m.Called(ctx, planID, day)
	var workout *domain.DailyWorkout
	if args.Get(0) != nil {
		workout = args.Get(0).(*domain.DailyWorkout)
	}
	return workout, args.Error(1)
}

func (m *PlanRepository) GetByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, userID, weekStart)
	var plan *domain.WorkoutPlan
	if args.Get(0) != nil {
		plan = args.Get(0).(*domain.WorkoutPlan)
	}
	return plan, args.Error(1)
}

func (m *PlanRepository) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx, weekStart)
	var plans []domain.WorkoutPlan
	if args.Get(0) != nil {
		plans = args.Get(0).([]domain.WorkoutPlan)
	}
	return plans, args.Error(1)
}

func (m *PlanRepository) GetDailyWorkouts(ctx context.Context, planID primitive.ObjectID) ([]domain.DailyWorkout, error) {
	args := m.Called(ctx, planID)
	var workouts []domain.DailyWorkout
	if args.Get(0) != nil {
		workouts = args.Get(0).([]domain.DailyWorkout)
	}
	return workouts, args.Error(1)
}

func (m *PlanRepository) GetWorkoutByDay(ctx context.Context, planID primitive.ObjectID, day string) (*domain.DailyWorkout, error) {
	args := m.Called(ctx, planID, day)
	var workout *domain.DailyWorkout
	if args.Get(0) != nil {
		workout = args.Get(0).(*domain.DailyWorkout)
	}
	return workout, args.Error(1)
}

func (m *PlanRepository) GetSetsByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	args := m.Called(ctx, workoutID)
	var sets []domain.ExerciseSet
	if args.Get(0) != nil {
		sets = args.Get(0).([]domain.ExerciseSet)
	}
	return sets, args.Error(1)
}

func (m *PlanRepository) MarkWorkoutSent(ctx context.Context, workoutID primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, workoutID, at)
	return args.Error(0)
}
