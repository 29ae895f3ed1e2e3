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

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new UserProfile repository backed by MongoDB.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert inserts the profile on first save, otherwise replaces the mutable
// fields of the existing one. The userId unique index guarantees one profile
// per user even under concurrent onboarding requests.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile.UserID == primitive.NilObjectID {
		return nil, errors.New("profile requires a user ID")
	}

	now := time.Now().UTC()
	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"goal":            profile.Goal,
			"workoutsPerWeek": profile.WorkoutsPerWeek,
			"equipment":       profile.Equipment,
			"fitnessLevel":    profile.FitnessLevel,
			"phoneNumber":     profile.PhoneNumber,
			"updatedAt":       now,
		},
		"$setOnInsert": bson.M{
			"userId":    profile.UserID,
			"createdAt": now,
		},
	}
	// The whoop token is only written when the caller provides one so a plain
	// profile edit never wipes an existing linkage.
	if profile.WhoopAccessToken != "" {
		update["$set"].(bson.M)["whoopAccessToken"] = profile.WhoopAccessToken
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.UserProfile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost an upsert race; the winner's row is the one we want.
			err = r.collection.FindOne(ctx, filter).Decode(&saved)
		}
		if err != nil {
			return nil, err
		}
	}
	return &saved, nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
// Call during startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to ensure profiles indexes: %v", err)
	}
}
