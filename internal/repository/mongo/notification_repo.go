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

const notificationCollectionName = "notifications"

// mongoNotificationRepository implements repository.NotificationRepository
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new Notification repository
// backed by MongoDB.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create appends a notification to the recipient's log. Timestamp is
// server-assigned; the log is append-only so there is no Update.
func (r *mongoNotificationRepository) Create(ctx context.Context, notification *domain.Notification) (primitive.ObjectID, error) {
	if notification.RecipientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("notification recipient is required")
	}
	if notification.Verb == "" || len(notification.Verb) > domain.MaxVerbLength {
		return primitive.NilObjectID, errors.New("notification verb must be 1-150 characters")
	}

	notification.ID = primitive.NewObjectID()
	notification.Timestamp = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByRecipient lists a user's notifications, newest first.
func (r *mongoNotificationRepository) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]domain.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"recipientId": recipientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ExistsByRecipientAndVerb reports whether an identical notification was
// already written for this recipient.
func (r *mongoNotificationRepository) ExistsByRecipientAndVerb(ctx context.Context, recipientID primitive.ObjectID, verb string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"recipientId": recipientID, "verb": verb}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteByRecipient removes a user's entire notification log (cascade on
// account deletion).
func (r *mongoNotificationRepository) DeleteByRecipient(ctx context.Context, recipientID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"recipientId": recipientID})
	return err
}

// EnsureNotificationIndexes creates necessary indexes for the
// notifications collection.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Recipient listing, newest first
			Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			// Dedup lookups for goal-reached notifications
			Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "verb", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
