package service

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidPeriod rejects period values outside {all, week, month}. The
// check runs before any query; an invalid period never produces a
// partial result.
var ErrInvalidPeriod = errors.New("period must be all, week or month")

// GoalProgress is one goal's snapshot inside a totals report.
type GoalProgress struct {
	GoalType        domain.GoalType
	TimePeriod      domain.TimePeriod
	ActivityType    domain.ActivityType
	Target          float64
	CurrentProgress float64
	Remaining       float64
}

// TotalsReport is the per-user rollup for a requested period.
type TotalsReport struct {
	Period        domain.TimePeriod
	StartDate     *time.Time // nil for the unbounded "all" period
	TotalCalories int
	TotalDistance float64
	TotalDuration int
	Goals         []GoalProgress
}

// TotalsReportService rolls up a user's activity totals for a period and
// snapshots every goal against that same period-filtered activity set.
type TotalsReportService interface {
	Report(ctx context.Context, userID primitive.ObjectID, period domain.TimePeriod) (*TotalsReport, error)
}

// --- Service Implementation ---

type totalsReportService struct {
	activityRepo     repository.ActivityRepository
	goalRepo         repository.GoalRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewTotalsReportService creates a new instance of totalsReportService.
func NewTotalsReportService(activityRepo repository.ActivityRepository, goalRepo repository.GoalRepository, notificationRepo repository.NotificationRepository) TotalsReportService {
	return &totalsReportService{
		activityRepo:     activityRepo,
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Report computes the rollup. All of the user's goals are reported
// regardless of their own time period; each goal's progress here is
// evaluated over the report's period window narrowed to the goal's
// activity type. That is a second filter layered on the period filter,
// distinct from the ProgressCalculator, which is driven by the goal's
// own period instead.
func (s *totalsReportService) Report(ctx context.Context, userID primitive.ObjectID, period domain.TimePeriod) (*TotalsReport, error) {
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}

	since := period.WindowStart(s.now().UTC())
	activities, err := s.activityRepo.GetByOwnerSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	report := &TotalsReport{
		Period:    period,
		StartDate: since,
	}
	for i := range activities {
		report.TotalCalories += activities[i].CaloriesBurned
		report.TotalDuration += activities[i].Duration
		if activities[i].Distance != nil {
			report.TotalDistance += *activities[i].Distance
		}
	}

	goals, err := s.goalRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	report.Goals = make([]GoalProgress, 0, len(goals))
	for i := range goals {
		goal := &goals[i]

		// Narrow the period-filtered set to this goal's activity type.
		// The metric reduction is a single switch inside SumMetric, so
		// exactly one of the three sums is computed per goal.
		matching := filterByType(activities, goal.ActivityType)
		current := domain.SumMetric(matching, goal.GoalType)
		remaining := goal.Remaining(current)

		if remaining <= 0 {
			s.notifyGoalReached(ctx, userID, goal)
		}

		report.Goals = append(report.Goals, GoalProgress{
			GoalType:        goal.GoalType,
			TimePeriod:      goal.TimePeriod,
			ActivityType:    goal.ActivityType,
			Target:          goal.Target,
			CurrentProgress: current,
			Remaining:       remaining,
		})
	}

	return report, nil
}

// notifyGoalReached writes the completion notification at most once per
// (recipient, verb) pair. The verb is deterministic from the goal's
// activity type and goal type, which is what makes the existence check
// meaningful. Two concurrent reports can still race past the check and
// double-insert; that is an accepted cost of a best-effort side effect.
func (s *totalsReportService) notifyGoalReached(ctx context.Context, userID primitive.ObjectID, goal *domain.Goal) {
	verb := GoalReachedVerb(goal.ActivityType, goal.GoalType)

	exists, err := s.notificationRepo.ExistsByRecipientAndVerb(ctx, userID, verb)
	if err != nil || exists {
		return
	}
	emitNotification(ctx, s.notificationRepo, userID, verb, domain.GoalTarget(goal.ID))
}

func filterByType(activities []domain.Activity, activityType domain.ActivityType) []domain.Activity {
	matching := make([]domain.Activity, 0, len(activities))
	for i := range activities {
		if activities[i].Type == activityType {
			matching = append(matching, activities[i])
		}
	}
	return matching
}
