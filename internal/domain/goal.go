package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalType is the metric a goal is measured against.
type GoalType string

const (
	GoalDistance GoalType = "distance"
	GoalDuration GoalType = "duration"
	GoalCalories GoalType = "calories"
)

func (t GoalType) IsValid() bool {
	switch t {
	case GoalDistance, GoalDuration, GoalCalories:
		return true
	}
	return false
}

// TimePeriod is the window a goal (or a report) is evaluated over.
type TimePeriod string

const (
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
	PeriodAll   TimePeriod = "all"
)

func (p TimePeriod) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return true
	}
	return false
}

// WindowStart returns the inclusive lower bound of the period window
// relative to now, or nil for the unbounded "all" period. The branches
// are mutually exclusive: exactly one window applies per period.
func (p TimePeriod) WindowStart(now time.Time) *time.Time {
	switch p {
	case PeriodWeek:
		start := now.AddDate(0, 0, -7)
		return &start
	case PeriodMonth:
		start := now.AddDate(0, 0, -30)
		return &start
	default:
		return nil
	}
}

// Goal is a user-declared target: reach Target of GoalType across
// activities of ActivityType within TimePeriod. A user may hold any
// number of goals, including duplicates of type and period.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	GoalType     GoalType           `bson:"goalType" json:"goalType"`
	ActivityType ActivityType       `bson:"activityType" json:"activityType"`
	Target       float64            `bson:"target" json:"target"`
	TimePeriod   TimePeriod         `bson:"timePeriod" json:"timePeriod"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"` // Server-assigned, immutable
}

// Validate checks the goal enums and that the target is positive.
func (g *Goal) Validate() error {
	if !g.GoalType.IsValid() {
		return ErrInvalidGoalType
	}
	if !g.ActivityType.IsValid() {
		return ErrInvalidActivityType
	}
	if !g.TimePeriod.IsValid() {
		return ErrInvalidTimePeriod
	}
	if g.Target <= 0 {
		return ErrInvalidTarget
	}
	return nil
}

// Remaining clamps target minus progress at zero; it is never negative.
func (g *Goal) Remaining(currentProgress float64) float64 {
	remaining := g.Target - currentProgress
	if remaining < 0 {
		return 0
	}
	return remaining
}
