package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	planCollectionName    = "workout_plans"
	workoutCollectionName = "daily_workouts"
	setCollectionName     = "exercise_sets"
)

// mongoPlanRepository implements repository.PlanRepository. It owns the three
// collections that make up a plan so the replace-on-regenerate sequence can
// run inside one multi-document transaction.
type mongoPlanRepository struct {
	db       *mongo.Database
	plans    *mongo.Collection
	workouts *mongo.Collection
	sets     *mongo.Collection
}

// NewMongoPlanRepository creates a new WorkoutPlan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		db:       db,
		plans:    db.Collection(planCollectionName),
		workouts: db.Collection(workoutCollectionName),
		sets:     db.Collection(setCollectionName),
	}
}

// ReplaceForWeek deletes every plan of the user whose week start falls inside
// the new plan's week (cascading to daily workouts and exercise sets) and
// inserts the replacement, all inside one transaction. Two concurrent
// regenerations for the same week interleave here; the unique
// (userId, weekStartDate) index decides the winner and the loser gets
// ErrConflict.
func (r *mongoPlanRepository) ReplaceForWeek(ctx context.Context, plan *domain.WorkoutPlan, days []repository.DayInsert) (*domain.WorkoutPlan, error) {
	if plan.UserID == primitive.NilObjectID || plan.WeekStartDate.IsZero() {
		return nil, errors.New("plan requires a user ID and week start date")
	}

	weekStart := plan.WeekStartDate.UTC()
	weekEnd := weekStart.AddDate(0, 0, 6)

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.deleteWeekCascade(sc, plan.UserID, weekStart, weekEnd); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		plan.ID = primitive.NewObjectID()
		plan.WeekStartDate = weekStart
		plan.CreatedAt = now
		plan.UpdatedAt = now

		if _, err := r.plans.InsertOne(sc, plan); err != nil {
			return nil, err
		}

		for i := range days {
			if err := r.insertDay(sc, plan.ID, &days[i], now); err != nil {
				return nil, err
			}
		}
		return plan, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return result.(*domain.WorkoutPlan), nil
}

// deleteWeekCascade removes the user's plans in [weekStart, weekEnd] together
// with their daily workouts and exercise sets. Must run inside a session.
func (r *mongoPlanRepository) deleteWeekCascade(sc mongo.SessionContext, userID primitive.ObjectID, weekStart, weekEnd time.Time) error {
	planFilter := bson.M{
		"userId":        userID,
		"weekStartDate": bson.M{"$gte": weekStart, "$lte": weekEnd},
	}

	cursor, err := r.plans.Find(sc, planFilter)
	if err != nil {
		return err
	}
	var stale []domain.WorkoutPlan
	if err = cursor.All(sc, &stale); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	planIDs := make([]primitive.ObjectID, len(stale))
	for i, p := range stale {
		planIDs[i] = p.ID
	}

	workoutCursor, err := r.workouts.Find(sc, bson.M{"workoutPlanId": bson.M{"$in": planIDs}})
	if err != nil {
		return err
	}
	var staleWorkouts []domain.DailyWorkout
	if err = workoutCursor.All(sc, &staleWorkouts); err != nil {
		return err
	}

	if len(staleWorkouts) > 0 {
		workoutIDs := make([]primitive.ObjectID, len(staleWorkouts))
		for i, w := range staleWorkouts {
			workoutIDs[i] = w.ID
		}
		if _, err = r.sets.DeleteMany(sc, bson.M{"dailyWorkoutId": bson.M{"$in": workoutIDs}}); err != nil {
			return err
		}
		if _, err = r.workouts.DeleteMany(sc, bson.M{"_id": bson.M{"$in": workoutIDs}}); err != nil {
			return err
		}
	}

	_, err = r.plans.DeleteMany(sc, bson.M{"_id": bson.M{"$in": planIDs}})
	return err
}

// insertDay persists one daily workout and its sets under the given plan.
func (r *mongoPlanRepository) insertDay(sc mongo.SessionContext, planID primitive.ObjectID, day *repository.DayInsert, now time.Time) error {
	day.Workout.ID = primitive.NewObjectID()
	day.Workout.WorkoutPlanID = planID
	day.Workout.CreatedAt = now
	day.Workout.UpdatedAt = now

	if _, err := r.workouts.InsertOne(sc, day.Workout); err != nil {
		return err
	}

	if len(day.Sets) == 0 {
		return nil
	}
	docs := make([]interface{}, len(day.Sets))
	for i := range day.Sets {
		day.Sets[i].ID = primitive.NewObjectID()
		day.Sets[i].DailyWorkoutID = day.Workout.ID
		day.Sets[i].CreatedAt = now
		day.Sets[i].UpdatedAt = now
		docs[i] = day.Sets[i]
	}
	_, err := r.sets.InsertMany(sc, docs)
	return err
}

// AppendDay adds one daily workout to an existing plan. The unique
// (workoutPlanId, day) index enforces at most one workout per day; if the day
// already exists the stored workout wins and is returned unchanged.
func (r *mongoPlanRepository) AppendDay(ctx context.Context, planID primitive.ObjectID, day repository.DayInsert) (*domain.DailyWorkout, error) {
	if planID == primitive.NilObjectID {
		return nil, errors.New("plan ID is required")
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.insertDay(sc, planID, &day, time.Now().UTC()); err != nil {
			return nil, err
		}
		return &day.Workout, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetWorkoutByDay(ctx, planID, day.Workout.Day)
		}
		return nil, err
	}
	return result.(*domain.DailyWorkout), nil
}

// GetByUserAndWeek retrieves the plan anchored at exactly the given week start.
func (r *mongoPlanRepository) GetByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"userId": userID, "weekStartDate": weekStart.UTC()}
	err := r.plans.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ListByWeek retrieves every user's plan for the given week start, for batch
// delivery.
func (r *mongoPlanRepository) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.WorkoutPlan, error) {
	cursor, err := r.plans.Find(ctx, bson.M{"weekStartDate": weekStart.UTC()})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WorkoutPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetDailyWorkouts retrieves all daily workouts of a plan. Insertion order is
// not meaningful; callers order by calendar day.
func (r *mongoPlanRepository) GetDailyWorkouts(ctx context.Context, planID primitive.ObjectID) ([]domain.DailyWorkout, error) {
	cursor, err := r.workouts.Find(ctx, bson.M{"workoutPlanId": planID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.DailyWorkout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkoutByDay retrieves the single workout a plan has for a named day.
func (r *mongoPlanRepository) GetWorkoutByDay(ctx context.Context, planID primitive.ObjectID, day string) (*domain.DailyWorkout, error) {
	var workout domain.DailyWorkout
	filter := bson.M{"workoutPlanId": planID, "day": day}
	err := r.workouts.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetSetsByWorkout retrieves the exercise sets of one daily workout.
func (r *mongoPlanRepository) GetSetsByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	cursor, err := r.sets.Find(ctx, bson.M{"dailyWorkoutId": workoutID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.ExerciseSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// MarkWorkoutSent flags a daily workout as delivered.
func (r *mongoPlanRepository) MarkWorkoutSent(ctx context.Context, workoutID primitive.ObjectID, at time.Time) error {
	update := bson.M{"$set": bson.M{"sent": true, "sentAt": at.UTC(), "updatedAt": time.Now().UTC()}}
	result, err := r.workouts.UpdateOne(ctx, bson.M{"_id": workoutID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates the indexes backing the plan invariants:
// one plan per (user, week start) and one workout per (plan, day).
// Call during startup.
func EnsurePlanIndexes(ctx context.Context, db *mongo.Database) {
	_, err := db.Collection(planCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStartDate", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("plan_user_week"),
		},
		{
			Keys:    bson.D{{Key: "weekStartDate", Value: 1}},
			Options: options.Index(),
		},
	})
	if err != nil {
		log.Printf("WARN: Failed to ensure workout_plans indexes: %v", err)
	}

	_, err = db.Collection(workoutCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutPlanId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("workout_plan_day"),
		},
	})
	if err != nil {
		log.Printf("WARN: Failed to ensure daily_workouts indexes: %v", err)
	}

	_, err = db.Collection(setCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dailyWorkoutId", Value: 1}},
			Options: options.Index(),
		},
	})
	if err != nil {
		log.Printf("WARN: Failed to ensure exercise_sets indexes: %v", err)
	}
}
