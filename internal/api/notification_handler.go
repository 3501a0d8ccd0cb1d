package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// --- DTOs ---

// NotificationTargetResponse is the tagged reference to the entity the
// notification is about.
type NotificationTargetResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// NotificationResponse is the DTO for one notification.
type NotificationResponse struct {
	ID        string                      `json:"id"`
	Verb      string                      `json:"verb"`
	Target    *NotificationTargetResponse `json:"target,omitempty"`
	Timestamp time.Time                   `json:"timestamp"`
}

// MapNotificationToResponse converts a domain.Notification to its DTO.
func MapNotificationToResponse(n *domain.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.Hex(),
		Verb:      n.Verb,
		Timestamp: n.Timestamp,
	}
	if n.Target != nil {
		resp.Target = &NotificationTargetResponse{
			Kind: string(n.Target.Kind),
			ID:   n.Target.ID.Hex(),
		}
	}
	return resp
}

// --- Handler Methods ---

// ListNotifications returns the user's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications.")
		return
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = MapNotificationToResponse(&notifications[i])
	}
	c.JSON(http.StatusOK, responses)
}
