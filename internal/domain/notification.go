package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxVerbLength caps the free-text description of a notification.
const MaxVerbLength = 150

// TargetKind tags the entity a notification refers to. The set is closed:
// notifications can only point at activities or goals.
type TargetKind string

const (
	TargetActivity TargetKind = "activity"
	TargetGoal     TargetKind = "goal"
)

// NotificationTarget is a weak back reference to the entity that caused
// the notification. It is not an ownership edge; the target may be
// deleted while the notification lives on.
type NotificationTarget struct {
	Kind TargetKind         `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

// Notification is an append-only event addressed to a single recipient.
// Notifications are never updated and are removed only when the
// recipient account is deleted.
type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID  `bson:"recipientId" json:"recipientId"`
	Verb        string              `bson:"verb" json:"verb"`
	Target      *NotificationTarget `bson:"target,omitempty" json:"target,omitempty"`
	Timestamp   time.Time           `bson:"timestamp" json:"timestamp"` // Server-assigned, immutable
}

// ActivityTarget builds a target reference to an activity.
func ActivityTarget(id primitive.ObjectID) *NotificationTarget {
	return &NotificationTarget{Kind: TargetActivity, ID: id}
}

// GoalTarget builds a target reference to a goal.
func GoalTarget(id primitive.ObjectID) *NotificationTarget {
	return &NotificationTarget{Kind: TargetGoal, ID: id}
}
