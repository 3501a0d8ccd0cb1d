package service

import (
	"context"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock ActivityRepository ---

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	args := m.Called(ctx, activity)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if activity, ok := args.Get(0).(*domain.Activity); ok {
		return activity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) GetByOwner(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, userID, filter)
	if activities, ok := args.Get(0).([]domain.Activity); ok {
		return activities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) GetByOwnerSince(ctx context.Context, userID primitive.ObjectID, since *time.Time) ([]domain.Activity, error) {
	args := m.Called(ctx, userID, since)
	if activities, ok := args.Get(0).([]domain.Activity); ok {
		return activities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) GetByOwnerAndTypeSince(ctx context.Context, userID primitive.ObjectID, activityType domain.ActivityType, since *time.Time) ([]domain.Activity, error) {
	args := m.Called(ctx, userID, activityType, since)
	if activities, ok := args.Get(0).([]domain.Activity); ok {
		return activities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) GetAllSince(ctx context.Context, since *time.Time) ([]domain.Activity, error) {
	args := m.Called(ctx, since)
	if activities, ok := args.Get(0).([]domain.Activity); ok {
		return activities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock GoalRepository ---

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	args := m.Called(ctx, goal)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if goal, ok := args.Get(0).(*domain.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGoalRepository) GetByOwner(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if goals, ok := args.Get(0).([]domain.Goal); ok {
		return goals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) (primitive.ObjectID, error) {
	args := m.Called(ctx, notification)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockNotificationRepository) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID)
	if notifications, ok := args.Get(0).([]domain.Notification); ok {
		return notifications, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) ExistsByRecipientAndVerb(ctx context.Context, recipientID primitive.ObjectID, verb string) (bool, error) {
	args := m.Called(ctx, recipientID, verb)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) DeleteByRecipient(ctx context.Context, recipientID primitive.ObjectID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

// --- Test Helpers ---

func floatPtr(f float64) *float64 {
	return &f
}

func makeActivity(userID primitive.ObjectID, activityType domain.ActivityType, duration int, distance *float64, calories int) domain.Activity {
	return domain.Activity{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Type:           activityType,
		Duration:       duration,
		Distance:       distance,
		CaloriesBurned: calories,
		CreatedAt:      time.Now().UTC(),
	}
}
