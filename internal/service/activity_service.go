package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrActivityNotFound covers both a missing activity and one owned by
	// another user; the two cases are deliberately indistinguishable so
	// the API never leaks existence of foreign records.
	ErrActivityNotFound = errors.New("activity not found")
)

// ActivityService manages the lifecycle of logged activities. Every
// mutation emits a notification to the owner as a best-effort side
// effect.
type ActivityService interface {
	CreateActivity(ctx context.Context, userID primitive.ObjectID, activityType domain.ActivityType, duration int, distance *float64, calories int) (*domain.Activity, error)
	ListActivities(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error)
	GetActivity(ctx context.Context, userID, activityID primitive.ObjectID) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, userID, activityID primitive.ObjectID, activityType domain.ActivityType, duration int, distance *float64, calories int) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, userID, activityID primitive.ObjectID) error
}

// --- Service Implementation ---

type activityService struct {
	activityRepo     repository.ActivityRepository
	notificationRepo repository.NotificationRepository
}

// NewActivityService creates a new instance of activityService.
func NewActivityService(activityRepo repository.ActivityRepository, notificationRepo repository.NotificationRepository) ActivityService {
	return &activityService{
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateActivity validates and persists a new activity for the
// authenticated user. Running and cycling require a distance.
func (s *activityService) CreateActivity(ctx context.Context, userID primitive.ObjectID, activityType domain.ActivityType, duration int, distance *float64, calories int) (*domain.Activity, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an activity")
	}

	activity := &domain.Activity{
		UserID:         userID,
		Type:           activityType,
		Duration:       duration,
		Distance:       distance,
		CaloriesBurned: calories,
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	activityID, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	activity.ID = activityID

	emitNotification(ctx, s.notificationRepo, userID,
		activityVerb("created a new", activity), domain.ActivityTarget(activityID))

	return activity, nil
}

// ListActivities returns the user's own activities, optionally filtered
// and ordered.
func (s *activityService) ListActivities(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.activityRepo.GetByOwner(ctx, userID, filter)
}

// GetActivity retrieves one activity, scoped to its owner.
func (s *activityService) GetActivity(ctx context.Context, userID, activityID primitive.ObjectID) (*domain.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if activity.UserID != userID {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// UpdateActivity modifies an activity the user owns. The owner and
// creation time never change.
func (s *activityService) UpdateActivity(ctx context.Context, userID, activityID primitive.ObjectID, activityType domain.ActivityType, duration int, distance *float64, calories int) (*domain.Activity, error) {
	existing, err := s.GetActivity(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	existing.Type = activityType
	existing.Duration = duration
	existing.Distance = distance
	existing.CaloriesBurned = calories
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	emitNotification(ctx, s.notificationRepo, userID,
		activityVerb("updated an", existing), domain.ActivityTarget(existing.ID))

	return existing, nil
}

// DeleteActivity removes an activity the user owns. The deletion
// notification is emitted first but never blocks the delete.
func (s *activityService) DeleteActivity(ctx context.Context, userID, activityID primitive.ObjectID) error {
	existing, err := s.GetActivity(ctx, userID, activityID)
	if err != nil {
		return err
	}

	emitNotification(ctx, s.notificationRepo, userID,
		activityVerb("Deleted an", existing), domain.ActivityTarget(existing.ID))

	// The repository filter also checks ownership, so a concurrent owner
	// change cannot slip a foreign delete through.
	err = s.activityRepo.Delete(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}
