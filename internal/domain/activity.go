package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType enumerates the kinds of activity users can log.
type ActivityType string

const (
	ActivityRunning       ActivityType = "running"
	ActivityCycling       ActivityType = "cycling"
	ActivityWeightlifting ActivityType = "weightlifting"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityRunning, ActivityCycling, ActivityWeightlifting:
		return true
	}
	return false
}

// RequiresDistance reports whether a distance must be recorded for this
// activity type. Weightlifting has no meaningful distance.
func (t ActivityType) RequiresDistance() bool {
	return t == ActivityRunning || t == ActivityCycling
}

// Activity is a single logged workout session. It is owned exclusively by
// its user and cascade-deleted with the user.
type Activity struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Type           ActivityType       `bson:"activityType" json:"activityType"`
	Duration       int                `bson:"duration" json:"duration"` // Minutes, > 0
	Distance       *float64           `bson:"distance,omitempty" json:"distance,omitempty"` // Kilometers, >= 0
	CaloriesBurned int                `bson:"caloriesBurned" json:"caloriesBurned"`         // > 0
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`                   // Server-assigned, immutable
}

// Validate checks the invariants of a logged activity: positive duration
// and calories, a known activity type, and distance present (and
// non-negative) for running and cycling.
func (a *Activity) Validate() error {
	if !a.Type.IsValid() {
		return ErrInvalidActivityType
	}
	if a.Duration <= 0 {
		return ErrInvalidDuration
	}
	if a.CaloriesBurned <= 0 {
		return ErrInvalidCalories
	}
	if a.Distance == nil && a.Type.RequiresDistance() {
		return ErrDistanceRequired
	}
	if a.Distance != nil && *a.Distance < 0 {
		return ErrInvalidDistance
	}
	return nil
}

// MetricValue returns the value this activity contributes to a goal of
// the given type. A missing distance counts as zero.
func (a *Activity) MetricValue(metric GoalType) float64 {
	switch metric {
	case GoalDistance:
		if a.Distance == nil {
			return 0
		}
		return *a.Distance
	case GoalDuration:
		return float64(a.Duration)
	default: // GoalCalories
		return float64(a.CaloriesBurned)
	}
}

// SumMetric reduces a set of activities to the total of one metric.
// An empty set sums to zero; that is not an error.
func SumMetric(activities []Activity, metric GoalType) float64 {
	var total float64
	for i := range activities {
		total += activities[i].MetricValue(metric)
	}
	return total
}
