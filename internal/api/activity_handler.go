package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityHandler holds the activity service dependency.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// --- DTOs ---

// ActivityRequest is the payload for creating or fully replacing an
// activity. Owner and creation date are server-assigned and not part of
// the payload.
type ActivityRequest struct {
	ActivityType string   `json:"activity_type" binding:"required,oneof=running cycling weightlifting"`
	Duration     int      `json:"duration" binding:"required,gt=0"`
	Distance     *float64 `json:"distance" binding:"omitempty,gte=0"`
	Calories     int      `json:"calories_burned" binding:"required,gt=0"`
}

// PatchActivityRequest carries a partial update; absent fields keep
// their stored values.
type PatchActivityRequest struct {
	ActivityType *string  `json:"activity_type" binding:"omitempty,oneof=running cycling weightlifting"`
	Duration     *int     `json:"duration" binding:"omitempty,gt=0"`
	Distance     *float64 `json:"distance" binding:"omitempty,gte=0"`
	Calories     *int     `json:"calories_burned" binding:"omitempty,gt=0"`
}

// ActivityResponse is the DTO for returning activity details.
type ActivityResponse struct {
	ID           string    `json:"id"`
	ActivityType string    `json:"activity_type"`
	Duration     int       `json:"duration"`
	Distance     *float64  `json:"distance,omitempty"`
	Calories     int       `json:"calories_burned"`
	CreatedAt    time.Time `json:"date"`
}

// MapActivityToResponse converts a domain.Activity to its DTO.
func MapActivityToResponse(activity *domain.Activity) ActivityResponse {
	if activity == nil {
		return ActivityResponse{}
	}
	return ActivityResponse{
		ID:           activity.ID.Hex(),
		ActivityType: string(activity.Type),
		Duration:     activity.Duration,
		Distance:     activity.Distance,
		Calories:     activity.CaloriesBurned,
		CreatedAt:    activity.CreatedAt,
	}
}

// MapActivitiesToResponse converts a slice of activities to DTOs.
func MapActivitiesToResponse(activities []domain.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i := range activities {
		responses[i] = MapActivityToResponse(&activities[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateActivity logs a new activity for the authenticated user.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.CreateActivity(
		c.Request.Context(), userID,
		domain.ActivityType(req.ActivityType), req.Duration, req.Distance, req.Calories,
	)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapActivityToResponse(activity))
}

// ListActivities lists the user's activities. Query params:
// activity_type (exact), activity_type_contains (substring),
// date_from / date_to (YYYY-MM-DD), ordering (distance, duration,
// calories_burned; "-" prefix for descending).
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	filter, err := parseActivityFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	activities, err := h.activityService.ListActivities(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve activities.")
		return
	}

	c.JSON(http.StatusOK, MapActivitiesToResponse(activities))
}

// GetActivity returns one of the user's activities.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	userID, activityID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.GetActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapActivityToResponse(activity))
}

// UpdateActivity fully replaces one of the user's activities (PUT).
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	userID, activityID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	activity, err := h.activityService.UpdateActivity(
		c.Request.Context(), userID, activityID,
		domain.ActivityType(req.ActivityType), req.Duration, req.Distance, req.Calories,
	)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapActivityToResponse(activity))
}

// PatchActivity partially updates one of the user's activities.
func (h *ActivityHandler) PatchActivity(c *gin.Context) {
	userID, activityID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	var req PatchActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	existing, err := h.activityService.GetActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	activityType := existing.Type
	duration := existing.Duration
	distance := existing.Distance
	calories := existing.CaloriesBurned
	if req.ActivityType != nil {
		activityType = domain.ActivityType(*req.ActivityType)
	}
	if req.Duration != nil {
		duration = *req.Duration
	}
	if req.Distance != nil {
		distance = req.Distance
	}
	if req.Calories != nil {
		calories = *req.Calories
	}

	activity, err := h.activityService.UpdateActivity(
		c.Request.Context(), userID, activityID, activityType, duration, distance, calories,
	)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapActivityToResponse(activity))
}

// DeleteActivity removes one of the user's activities.
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, activityID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), userID, activityID); err != nil {
		respondActivityError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Helpers ---

func requireUserAndID(c *gin.Context) (userID, resourceID primitive.ObjectID, ok bool) {
	userID, ok = requireUserID(c)
	if !ok {
		return
	}
	resourceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// Malformed IDs cannot match any record; treat like a miss.
		abortWithError(c, http.StatusNotFound, "Resource not found.")
		return userID, primitive.NilObjectID, false
	}
	return userID, resourceID, true
}

func parseActivityFilter(c *gin.Context) (repository.ActivityFilter, error) {
	var filter repository.ActivityFilter

	if v := c.Query("activity_type"); v != "" {
		filter.Type = domain.ActivityType(v)
	}
	filter.TypeContains = c.Query("activity_type_contains")

	const dateLayout = "2006-01-02"
	if v := c.Query("date_from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("date_from must be in YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if v := c.Query("date_to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("date_to must be in YYYY-MM-DD format")
		}
		// Inclusive upper bound: take the whole day.
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}

	if ordering := c.Query("ordering"); ordering != "" {
		if strings.HasPrefix(ordering, "-") {
			filter.Descending = true
			ordering = strings.TrimPrefix(ordering, "-")
		}
		order := repository.ActivityOrder(ordering)
		if !order.IsValid() {
			return filter, fmt.Errorf("ordering must be one of distance, duration, calories_burned")
		}
		filter.Order = order
	}

	return filter, nil
}

func respondActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case isValidationError(err):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process activity.")
	}
}

// isValidationError matches the domain invariant errors that map to 400.
func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidActivityType) ||
		errors.Is(err, domain.ErrInvalidGoalType) ||
		errors.Is(err, domain.ErrInvalidTimePeriod) ||
		errors.Is(err, domain.ErrInvalidDuration) ||
		errors.Is(err, domain.ErrInvalidCalories) ||
		errors.Is(err, domain.ErrInvalidDistance) ||
		errors.Is(err, domain.ErrDistanceRequired) ||
		errors.Is(err, domain.ErrInvalidTarget)
}
