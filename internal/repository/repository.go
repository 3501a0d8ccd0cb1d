package repository

import (
	"context"
	"time"

	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
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
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetByIDs resolves a batch of users at once; missing IDs are simply
	// absent from the result, not an error.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ActivityOrder names the sortable fields of an activity listing.
type ActivityOrder string

const (
	OrderByDistance ActivityOrder = "distance"
	OrderByDuration ActivityOrder = "duration"
	OrderByCalories ActivityOrder = "calories_burned"
)

func (o ActivityOrder) IsValid() bool {
	switch o {
	case OrderByDistance, OrderByDuration, OrderByCalories:
		return true
	}
	return false
}

// ActivityFilter narrows an owner-scoped activity listing. Zero values
// mean "no constraint". When Order is empty the listing falls back to
// newest first.
type ActivityFilter struct {
	Type         domain.ActivityType // exact match
	TypeContains string              // case-insensitive substring match
	From         *time.Time          // creation time >= From
	To           *time.Time          // creation time <= To
	Order        ActivityOrder
	Descending   bool
}

// ActivityRepository defines the interface for interacting with activity data.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Activity, error)
	GetByOwner(ctx context.Context, userID primitive.ObjectID, filter ActivityFilter) ([]domain.Activity, error)
	// GetByOwnerSince returns the owner's activities created at or after
	// since; a nil since means no time bound.
	GetByOwnerSince(ctx context.Context, userID primitive.ObjectID, since *time.Time) ([]domain.Activity, error)
	// GetByOwnerAndTypeSince additionally narrows by activity type.
	GetByOwnerAndTypeSince(ctx context.Context, userID primitive.ObjectID, activityType domain.ActivityType, since *time.Time) ([]domain.Activity, error)
	// GetAllSince scans activities across every user, creation time
	// ascending, at or after since (nil means unbounded).
	GetAllSince(ctx context.Context, since *time.Time) ([]domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error
}

// GoalRepository defines the interface for interacting with goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	GetByOwner(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error
}

// NotificationRepository defines the interface for the append-only
// notification log. There is deliberately no update or single delete.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (primitive.ObjectID, error)
	// GetByRecipient lists a user's notifications, newest first.
	GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]domain.Notification, error)
	// ExistsByRecipientAndVerb reports whether an identical notification
	// was already written; used to deduplicate "goal reached" events.
	ExistsByRecipientAndVerb(ctx context.Context, recipientID primitive.ObjectID, verb string) (bool, error)
	DeleteByRecipient(ctx context.Context, recipientID primitive.ObjectID) error
}
