package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// Profile is a user's own view of their account, with a short-lived
// download URL for the profile picture when one is set.
type Profile struct {
	User              domain.User
	ProfilePictureURL string
}

// ProfileService manages the authenticated user's own account: profile
// reads and edits, profile picture uploads via presigned S3 URLs, and
// account deletion with its cascades.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, username, bio string, newPassword *string) (*Profile, error)
	// RequestPictureUpload generates a presigned PUT URL for the client
	// to upload their picture directly and records the object key.
	RequestPictureUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (uploadURL string, err error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type profileService struct {
	userRepo         repository.UserRepository
	activityRepo     repository.ActivityRepository
	goalRepo         repository.GoalRepository
	notificationRepo repository.NotificationRepository
	fileStorage      storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	goalRepo repository.GoalRepository,
	notificationRepo repository.NotificationRepository,
	fileStorage storage.FileStorage,
) ProfileService {
	return &profileService{
		userRepo:         userRepo,
		activityRepo:     activityRepo,
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		fileStorage:      fileStorage,
	}
}

// GetProfile returns the user's account with a presigned download URL
// for the profile picture if one was uploaded.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toProfile(ctx, user), nil
}

// UpdateProfile edits username, bio and optionally the password. Email
// is immutable.
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, username, bio string, newPassword *string) (*Profile, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	user.Username = username
	user.Bio = bio
	if newPassword != nil && *newPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.toProfile(ctx, user), nil
}

// RequestPictureUpload reserves an object key and returns a presigned
// PUT URL for it. The old picture object, if any, is deleted best-effort.
func (s *profileService) RequestPictureUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("profile-pictures/%s/%s", userID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	oldKey := user.ProfilePictureKey
	user.ProfilePictureKey = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	if oldKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
			log.Printf("WARN: failed to delete old profile picture %s: %v", oldKey, err)
		}
	}

	return uploadURL, nil
}

// DeleteAccount removes the user and cascades to everything they own:
// activities, goals and the notification log.
func (s *profileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.activityRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.goalRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByRecipient(ctx, userID); err != nil {
		return err
	}

	if user.ProfilePictureKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, user.ProfilePictureKey); err != nil {
			log.Printf("WARN: failed to delete profile picture %s: %v", user.ProfilePictureKey, err)
		}
	}

	err = s.userRepo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *profileService) getUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) toProfile(ctx context.Context, user *domain.User) *Profile {
	profile := &Profile{User: *user}
	profile.User.PasswordHash = ""

	if user.ProfilePictureKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ProfilePictureKey, 1*time.Hour)
		if err != nil {
			log.Printf("WARN: failed to presign profile picture %s: %v", user.ProfilePictureKey, err)
		} else {
			profile.ProfilePictureURL = url
		}
	}
	return profile
}
