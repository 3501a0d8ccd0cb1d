package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService exposes the read side of the notification log.
// Writes happen inside the lifecycle and report services.
type NotificationService interface {
	ListNotifications(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns the user's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.notificationRepo.GetByRecipient(ctx, userID)
}
