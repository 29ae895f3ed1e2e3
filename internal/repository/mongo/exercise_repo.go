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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// GetOrCreate resolves an exercise by its (name, muscleKey) identity. The
// upsert only sets the descriptive fields on insert, so a later reference
// with different descriptions still reuses the original row. A duplicate-key
// error means another writer inserted the same identity concurrently; the
// existing row is fetched and returned instead of failing.
func (r *mongoExerciseRepository) GetOrCreate(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}
	if exercise.MuscleKey == "" {
		exercise.MuscleKey = domain.MuscleKey(exercise.MuscleGroups)
	}

	now := time.Now().UTC()
	filter := bson.M{"name": exercise.Name, "muscleKey": exercise.MuscleKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":         exercise.Name,
			"muscleKey":    exercise.MuscleKey,
			"description":  exercise.Description,
			"muscleGroups": exercise.MuscleGroups,
			"equipment":    exercise.Equipment,
			"difficulty":   exercise.Difficulty,
			"instructions": exercise.Instructions,
			"tips":         exercise.Tips,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var resolved domain.Exercise
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&resolved)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = r.collection.FindOne(ctx, filter).Decode(&resolved)
		}
		if err != nil {
			return nil, err
		}
	}
	return &resolved, nil
}

// GetByIDs fetches a batch of exercises keyed by their ObjectID.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Exercise, error) {
	result := make(map[primitive.ObjectID]domain.Exercise, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	for _, ex := range exercises {
		result[ex.ID] = ex
	}
	return result, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises
// collection. The unique (name, muscleKey) index is what makes GetOrCreate
// race-safe; call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "muscleKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("exercise_identity"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to ensure exercises indexes: %v", err)
	}
}
