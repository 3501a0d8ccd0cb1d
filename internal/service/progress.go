package service

import (
	"context"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressCalculator computes how much of a goal has been satisfied by
// the owner's recorded activities.
//
// The activity set is narrowed twice: by the goal's activity type and by
// the window derived from the goal's own time period (week = last 7
// days, month = last 30 days, all = unbounded). Both the window
// selection and the metric reduction are single switch statements, so
// exactly one window and exactly one metric sum apply per goal.
type ProgressCalculator struct {
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewProgressCalculator creates a ProgressCalculator reading from the
// given activity repository.
func NewProgressCalculator(activityRepo repository.ActivityRepository) *ProgressCalculator {
	return &ProgressCalculator{
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// Progress returns the current progress toward the goal and the amount
// still remaining. An empty activity set yields zero progress, not an
// error, and remaining is clamped at zero so it is never negative.
func (p *ProgressCalculator) Progress(ctx context.Context, userID primitive.ObjectID, goal *domain.Goal) (current, remaining float64, err error) {
	since := goal.TimePeriod.WindowStart(p.now().UTC())

	activities, err := p.activityRepo.GetByOwnerAndTypeSince(ctx, userID, goal.ActivityType, since)
	if err != nil {
		return 0, 0, err
	}

	current = domain.SumMetric(activities, goal.GoalType)
	return current, goal.Remaining(current), nil
}
