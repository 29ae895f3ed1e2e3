package repository

import (
	"context"
	"time"

	"fitforge/fitness-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
	// ErrConflict marks a lost race between two concurrent regenerations of
	// the same (user, week). Safe to retry.
	ErrConflict = RepositoryError("conflicting concurrent write")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository defines the interface for interacting with user profiles.
type ProfileRepository interface {
	// Upsert inserts the profile on first save and replaces the mutable
	// fields afterwards, keyed by UserID.
	Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
}

// ExerciseRepository defines the interface for the shared exercise library.
type ExerciseRepository interface {
	// GetOrCreate resolves an exercise by its (name, muscle groups) identity,
	// creating it on first reference. Concurrent identical calls yield the
	// same row, never a duplicate.
	GetOrCreate(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Exercise, error)
}

// DayInsert bundles one daily workout with its exercise sets so a plan repo
// implementation can persist them in a single transactional unit.
type DayInsert struct {
	Workout domain.DailyWorkout
	Sets    []domain.ExerciseSet
}

// PlanRepository defines the interface for workout plans and their owned
// daily workouts and exercise sets.
type PlanRepository interface {
	// ReplaceForWeek atomically deletes any plan of the same user whose week
	// start falls within the plan's week (cascading to daily workouts and
	// sets) and inserts the new plan with its days. Returns ErrConflict when
	// a concurrent regeneration wins the (user, week start) uniqueness race.
	ReplaceForWeek(ctx context.Context, plan *domain.WorkoutPlan, days []DayInsert) (*domain.WorkoutPlan, error)

	// AppendDay adds one daily workout with its sets to an existing plan.
	// If the plan already has a workout for that day, the existing workout
	// is returned unchanged and nothing is inserted.
	AppendDay(ctx context.Context, planID primitive.ObjectID, day DayInsert) (*domain.DailyWorkout, error)

	GetByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*domain.WorkoutPlan, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.WorkoutPlan, error)
	GetDailyWorkouts(ctx context.Context, planID primitive.ObjectID) ([]domain.DailyWorkout, error)
	GetWorkoutByDay(ctx context.Context, planID primitive.ObjectID, day string) (*domain.DailyWorkout, error)
	GetSetsByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error)
	MarkWorkoutSent(ctx context.Context, workoutID primitive.ObjectID, at time.Time) error
}
