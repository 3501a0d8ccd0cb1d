package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollectionName = "activities"

// mongoActivityRepository implements repository.ActivityRepository
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new Activity repository backed by MongoDB.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts a new activity. CreatedAt is server-assigned here and
// never updated afterwards.
func (r *mongoActivityRepository) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	if activity.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("activity owner is required")
	}

	activity.ID = primitive.NewObjectID()
	activity.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves an activity by its ID.
func (r *mongoActivityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// GetByOwner lists a user's activities with optional filtering and
// ordering. Without an explicit order the newest activities come first.
func (r *mongoActivityRepository) GetByOwner(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error) {
	query := bson.M{"userId": userID}

	if filter.Type != "" {
		query["activityType"] = filter.Type
	} else if filter.TypeContains != "" {
		query["activityType"] = bson.M{"$regex": primitive.Regex{Pattern: filter.TypeContains, Options: "i"}}
	}

	if filter.From != nil || filter.To != nil {
		dateRange := bson.M{}
		if filter.From != nil {
			dateRange["$gte"] = *filter.From
		}
		if filter.To != nil {
			dateRange["$lte"] = *filter.To
		}
		query["createdAt"] = dateRange
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if filter.Order.IsValid() {
		direction := 1
		if filter.Descending {
			direction = -1
		}
		sort = bson.D{{Key: orderField(filter.Order), Value: direction}}
	}

	return r.findActivities(ctx, query, options.Find().SetSort(sort))
}

// GetByOwnerSince returns the owner's activities created at or after
// since. A nil since means no time bound.
func (r *mongoActivityRepository) GetByOwnerSince(ctx context.Context, userID primitive.ObjectID, since *time.Time) ([]domain.Activity, error) {
	query := bson.M{"userId": userID}
	if since != nil {
		query["createdAt"] = bson.M{"$gte": *since}
	}
	return r.findActivities(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// GetByOwnerAndTypeSince narrows GetByOwnerSince to one activity type.
func (r *mongoActivityRepository) GetByOwnerAndTypeSince(ctx context.Context, userID primitive.ObjectID, activityType domain.ActivityType, since *time.Time) ([]domain.Activity, error) {
	query := bson.M{"userId": userID, "activityType": activityType}
	if since != nil {
		query["createdAt"] = bson.M{"$gte": *since}
	}
	return r.findActivities(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// GetAllSince scans activities across every user for leaderboard
// aggregation, creation time ascending so callers get a stable order.
func (r *mongoActivityRepository) GetAllSince(ctx context.Context, since *time.Time) ([]domain.Activity, error) {
	query := bson.M{}
	if since != nil {
		query["createdAt"] = bson.M{"$gte": *since}
	}
	return r.findActivities(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// Update modifies a logged activity. The owner and creation time are
// deliberately excluded from the update document.
func (r *mongoActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == primitive.NilObjectID {
		return errors.New("activity ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"activityType":   activity.Type,
			"duration":       activity.Duration,
			"distance":       activity.Distance,
			"caloriesBurned": activity.CaloriesBurned,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": activity.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an activity, ensuring it belongs to the given user.
// The combined filter means a foreign activity is indistinguishable from
// a missing one.
func (r *mongoActivityRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByOwner removes all of a user's activities (cascade on account
// deletion).
func (r *mongoActivityRepository) DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

func (r *mongoActivityRepository) findActivities(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Activity, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []domain.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func orderField(order repository.ActivityOrder) string {
	switch order {
	case repository.OrderByDistance:
		return "distance"
	case repository.OrderByDuration:
		return "duration"
	default:
		return "caloriesBurned"
	}
}

// EnsureActivityIndexes creates necessary indexes for the activities collection.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Owner-scoped listings and per-goal progress queries
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "activityType", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			// Cross-user leaderboard window scans
			Keys: bson.D{{Key: "createdAt", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
