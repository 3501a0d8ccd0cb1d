package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestReportService(activityRepo *MockActivityRepository, goalRepo *MockGoalRepository, notificationRepo *MockNotificationRepository, now time.Time) *totalsReportService {
	return &totalsReportService{
		activityRepo:     activityRepo,
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		now:              func() time.Time { return now },
	}
}

func TestReport_InvalidPeriodRejectedBeforeAnyQuery(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	report, err := svc.Report(ctx, userID, domain.TimePeriod("fortnight"))

	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Nil(t, report)
	activityRepo.AssertNotCalled(t, "GetByOwnerSince", mock.Anything, mock.Anything, mock.Anything)
	goalRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
}

func TestReport_TotalsSumAllMetricsAcrossTypes(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	activities := []domain.Activity{
		makeActivity(userID, domain.ActivityRunning, 30, floatPtr(5), 300),
		makeActivity(userID, domain.ActivityCycling, 60, floatPtr(20), 500),
		makeActivity(userID, domain.ActivityWeightlifting, 45, nil, 250),
	}
	activityRepo.On("GetByOwnerSince", ctx, userID, (*time.Time)(nil)).Return(activities, nil).Once()
	goalRepo.On("GetByOwner", ctx, userID).Return([]domain.Goal{}, nil).Once()

	report, err := svc.Report(ctx, userID, domain.PeriodAll)

	require.NoError(t, err)
	assert.Nil(t, report.StartDate)
	assert.Equal(t, 1050, report.TotalCalories)
	assert.Equal(t, 25.0, report.TotalDistance)
	assert.Equal(t, 135, report.TotalDuration)
	assert.Empty(t, report.Goals)
	activityRepo.AssertExpectations(t)
	goalRepo.AssertExpectations(t)
}

func TestReport_WeekPeriodSetsStartDate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, now)

	weekStart := now.AddDate(0, 0, -7)
	activityRepo.On("GetByOwnerSince", ctx, userID, &weekStart).Return([]domain.Activity{}, nil).Once()
	goalRepo.On("GetByOwner", ctx, userID).Return([]domain.Goal{}, nil).Once()

	report, err := svc.Report(ctx, userID, domain.PeriodWeek)

	require.NoError(t, err)
	require.NotNil(t, report.StartDate)
	assert.Equal(t, weekStart, *report.StartDate)
	assert.Equal(t, domain.PeriodWeek, report.Period)
	activityRepo.AssertExpectations(t)
}

func TestReport_GoalProgressNarrowedToActivityType(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	activities := []domain.Activity{
		makeActivity(userID, domain.ActivityRunning, 30, floatPtr(5), 300),
		makeActivity(userID, domain.ActivityCycling, 60, floatPtr(20), 500),
	}
	goals := []domain.Goal{
		{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			GoalType:     domain.GoalDistance,
			ActivityType: domain.ActivityRunning,
			Target:       10,
			TimePeriod:   domain.PeriodWeek,
		},
	}
	activityRepo.On("GetByOwnerSince", ctx, userID, (*time.Time)(nil)).Return(activities, nil).Once()
	goalRepo.On("GetByOwner", ctx, userID).Return(goals, nil).Once()

	report, err := svc.Report(ctx, userID, domain.PeriodAll)

	require.NoError(t, err)
	require.Len(t, report.Goals, 1)
	// Only the running distance counts; cycling is filtered out.
	assert.Equal(t, 5.0, report.Goals[0].CurrentProgress)
	assert.Equal(t, 5.0, report.Goals[0].Remaining)
	assert.Equal(t, domain.GoalDistance, report.Goals[0].GoalType)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	activityRepo.AssertExpectations(t)
}

func TestReport_DurationGoalSumsDurationNotCalories(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	activities := []domain.Activity{
		makeActivity(userID, domain.ActivityWeightlifting, 40, nil, 999),
	}
	goals := []domain.Goal{
		{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			GoalType:     domain.GoalDuration,
			ActivityType: domain.ActivityWeightlifting,
			Target:       100,
			TimePeriod:   domain.PeriodAll,
		},
	}
	activityRepo.On("GetByOwnerSince", ctx, userID, (*time.Time)(nil)).Return(activities, nil).Once()
	goalRepo.On("GetByOwner", ctx, userID).Return(goals, nil).Once()

	report, err := svc.Report(ctx, userID, domain.PeriodAll)

	require.NoError(t, err)
	require.Len(t, report.Goals, 1)
	assert.Equal(t, 40.0, report.Goals[0].CurrentProgress)
	assert.Equal(t, 60.0, report.Goals[0].Remaining)
}

func TestReport_GoalReachedNotifiedOncePerVerb(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	goalID := primitive.NewObjectID()
	activities := []domain.Activity{
		makeActivity(userID, domain.ActivityRunning, 60, floatPtr(12), 700),
	}
	goals := []domain.Goal{
		{
			ID:           goalID,
			UserID:       userID,
			GoalType:     domain.GoalDistance,
			ActivityType: domain.ActivityRunning,
			Target:       10,
			TimePeriod:   domain.PeriodAll,
		},
	}
	activityRepo.On("GetByOwnerSince", ctx, userID, (*time.Time)(nil)).Return(activities, nil).Twice()
	goalRepo.On("GetByOwner", ctx, userID).Return(goals, nil).Twice()

	verb := GoalReachedVerb(domain.ActivityRunning, domain.GoalDistance)
	// First report writes the notification, the second sees it exists.
	notificationRepo.On("ExistsByRecipientAndVerb", ctx, userID, verb).Return(false, nil).Once()
	notificationRepo.On("ExistsByRecipientAndVerb", ctx, userID, verb).Return(true, nil).Once()
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == userID &&
			n.Verb == verb &&
			n.Target != nil &&
			n.Target.Kind == domain.TargetGoal &&
			n.Target.ID == goalID
	})).Return(primitive.NewObjectID(), nil).Once()

	first, err := svc.Report(ctx, userID, domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Goals[0].Remaining)

	second, err := svc.Report(ctx, userID, domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.Goals[0].Remaining)

	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
	notificationRepo.AssertExpectations(t)
}

func TestReport_NotificationFailureDoesNotFailReport(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	svc := newTestReportService(activityRepo, goalRepo, notificationRepo, time.Now())

	activities := []domain.Activity{
		makeActivity(userID, domain.ActivityCycling, 90, floatPtr(55), 900),
	}
	goals := []domain.Goal{
		{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			GoalType:     domain.GoalDistance,
			ActivityType: domain.ActivityCycling,
			Target:       50,
			TimePeriod:   domain.PeriodAll,
		},
	}
	activityRepo.On("GetByOwnerSince", ctx, userID, (*time.Time)(nil)).Return(activities, nil).Once()
	goalRepo.On("GetByOwner", ctx, userID).Return(goals, nil).Once()
	notificationRepo.On("ExistsByRecipientAndVerb", ctx, userID, mock.Anything).Return(false, nil).Once()
	notificationRepo.On("Create", ctx, mock.Anything).Return(primitive.NilObjectID, assert.AnError).Once()

	report, err := svc.Report(ctx, userID, domain.PeriodAll)

	require.NoError(t, err)
	require.Len(t, report.Goals, 1)
	assert.Equal(t, 55.0, report.Goals[0].CurrentProgress)
	notificationRepo.AssertExpectations(t)
}
