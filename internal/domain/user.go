package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Email is the login identifier,
// Username is what shows up in leaderboards and notifications.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // Unique, immutable after registration
	Username     string             `bson:"username" json:"username"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	// S3 object key of the profile picture, set after a presigned upload.
	ProfilePictureKey string `bson:"profilePictureKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
