package service

import (
	"context"
	"fmt"
	"log"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification verbs. The texts are fixed: the goal-reached verb doubles
// as the dedup key, so it must be reproducible from the goal's activity
// type and goal type alone.

func activityVerb(action string, activity *domain.Activity) string {
	distanceText := ""
	if activity.Distance != nil {
		distanceText = fmt.Sprintf("Distance: %g km", *activity.Distance)
	}
	return fmt.Sprintf("You have %s Activity: %s, Duration: %d minutes, %s, Calories: %d kcal",
		action, activity.Type, activity.Duration, distanceText, activity.CaloriesBurned)
}

func goalCreatedVerb(goal *domain.Goal) string {
	return fmt.Sprintf("New Goal Created %s -Target: %g %s", goal.ActivityType, goal.Target, goal.GoalType)
}

func goalUpdatedVerb(goal *domain.Goal) string {
	return fmt.Sprintf("Goal updated: %s -, New Target: %g %s!", goal.ActivityType, goal.Target, goal.GoalType)
}

func goalDeletedVerb(goal *domain.Goal) string {
	return fmt.Sprintf("Goal Deleted: %s", goal.ActivityType)
}

// GoalReachedVerb is the deterministic dedup key for goal-completion
// notifications.
func GoalReachedVerb(activityType domain.ActivityType, goalType domain.GoalType) string {
	return fmt.Sprintf("You have Reached your goal: %s - %s!", activityType, goalType)
}

// emitNotification writes a notification as a best-effort side effect.
// A failed write is logged and swallowed; it must never abort or roll
// back the mutation that triggered it.
func emitNotification(ctx context.Context, repo repository.NotificationRepository, recipientID primitive.ObjectID, verb string, target *domain.NotificationTarget) {
	notification := &domain.Notification{
		RecipientID: recipientID,
		Verb:        verb,
		Target:      target,
	}
	if _, err := repo.Create(ctx, notification); err != nil {
		log.Printf("WARN: failed to write notification for user %s: %v", recipientID.Hex(), err)
	}
}
