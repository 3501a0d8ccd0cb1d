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
	// ErrGoalNotFound also covers goals owned by another user, so the API
	// never leaks their existence.
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalWithProgress pairs a goal with its computed progress snapshot.
type GoalWithProgress struct {
	Goal            domain.Goal
	CurrentProgress float64
	Remaining       float64
}

// GoalService manages goal declarations. Listings are annotated with
// live progress from the ProgressCalculator, and every mutation emits a
// notification to the owner.
type GoalService interface {
	CreateGoal(ctx context.Context, userID primitive.ObjectID, goalType domain.GoalType, activityType domain.ActivityType, target float64, timePeriod domain.TimePeriod) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID primitive.ObjectID) ([]GoalWithProgress, error)
	GetGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*GoalWithProgress, error)
	UpdateGoal(ctx context.Context, userID, goalID primitive.ObjectID, goalType domain.GoalType, activityType domain.ActivityType, target float64, timePeriod domain.TimePeriod) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error
}

// --- Service Implementation ---

type goalService struct {
	goalRepo         repository.GoalRepository
	notificationRepo repository.NotificationRepository
	progress         *ProgressCalculator
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository, notificationRepo repository.NotificationRepository, progress *ProgressCalculator) GoalService {
	return &goalService{
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		progress:         progress,
	}
}

// CreateGoal validates and persists a new goal. The owner comes from the
// authenticated identity, never from the payload.
func (s *goalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, goalType domain.GoalType, activityType domain.ActivityType, target float64, timePeriod domain.TimePeriod) (*domain.Goal, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a goal")
	}

	goal := &domain.Goal{
		UserID:       userID,
		GoalType:     goalType,
		ActivityType: activityType,
		Target:       target,
		TimePeriod:   timePeriod,
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	goalID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = goalID

	emitNotification(ctx, s.notificationRepo, userID, goalCreatedVerb(goal), domain.GoalTarget(goalID))

	return goal, nil
}

// ListGoals returns all of the user's goals with a progress snapshot per
// goal, evaluated over each goal's own time period.
func (s *goalService) ListGoals(ctx context.Context, userID primitive.ObjectID) ([]GoalWithProgress, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}

	goals, err := s.goalRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]GoalWithProgress, 0, len(goals))
	for i := range goals {
		current, remaining, err := s.progress.Progress(ctx, userID, &goals[i])
		if err != nil {
			return nil, err
		}
		result = append(result, GoalWithProgress{
			Goal:            goals[i],
			CurrentProgress: current,
			Remaining:       remaining,
		})
	}
	return result, nil
}

// GetGoal retrieves one goal with progress, scoped to its owner.
func (s *goalService) GetGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*GoalWithProgress, error) {
	goal, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	current, remaining, err := s.progress.Progress(ctx, userID, goal)
	if err != nil {
		return nil, err
	}
	return &GoalWithProgress{Goal: *goal, CurrentProgress: current, Remaining: remaining}, nil
}

// UpdateGoal modifies a goal the user owns.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID primitive.ObjectID, goalType domain.GoalType, activityType domain.ActivityType, target float64, timePeriod domain.TimePeriod) (*domain.Goal, error) {
	existing, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	existing.GoalType = goalType
	existing.ActivityType = activityType
	existing.Target = target
	existing.TimePeriod = timePeriod
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	emitNotification(ctx, s.notificationRepo, userID, goalUpdatedVerb(existing), domain.GoalTarget(existing.ID))

	return existing, nil
}

// DeleteGoal removes a goal the user owns. The notification goes out
// before the delete but a failed write never blocks it.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error {
	existing, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}

	emitNotification(ctx, s.notificationRepo, userID, goalDeletedVerb(existing), domain.GoalTarget(existing.ID))

	err = s.goalRepo.Delete(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (s *goalService) getOwnedGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}
