package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

// GoalRequest is the payload for creating or fully replacing a goal.
type GoalRequest struct {
	GoalType     string  `json:"goal_type" binding:"required,oneof=distance duration calories"`
	ActivityType string  `json:"activity_type" binding:"required,oneof=running cycling weightlifting"`
	Target       float64 `json:"target" binding:"required,gt=0"`
	TimePeriod   string  `json:"time_period" binding:"required,oneof=week month all"`
}

// PatchGoalRequest carries a partial goal update.
type PatchGoalRequest struct {
	GoalType     *string  `json:"goal_type" binding:"omitempty,oneof=distance duration calories"`
	ActivityType *string  `json:"activity_type" binding:"omitempty,oneof=running cycling weightlifting"`
	Target       *float64 `json:"target" binding:"omitempty,gt=0"`
	TimePeriod   *string  `json:"time_period" binding:"omitempty,oneof=week month all"`
}

// GoalResponse returns a goal with its live progress snapshot, the way
// the goal listing always reports progress alongside the declaration.
type GoalResponse struct {
	ID              string    `json:"id"`
	GoalType        string    `json:"goal_type"`
	ActivityType    string    `json:"activity_type"`
	Target          float64   `json:"target"`
	TimePeriod      string    `json:"time_period"`
	CurrentProgress float64   `json:"current_progress"`
	Remaining       float64   `json:"remaining"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapGoalToResponse converts a progress-annotated goal to its DTO.
func MapGoalToResponse(g *service.GoalWithProgress) GoalResponse {
	if g == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:              g.Goal.ID.Hex(),
		GoalType:        string(g.Goal.GoalType),
		ActivityType:    string(g.Goal.ActivityType),
		Target:          g.Goal.Target,
		TimePeriod:      string(g.Goal.TimePeriod),
		CurrentProgress: g.CurrentProgress,
		Remaining:       g.Remaining,
		CreatedAt:       g.Goal.CreatedAt,
	}
}

// --- Handler Methods ---

// CreateGoal declares a new goal for the authenticated user.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateGoal(
		c.Request.Context(), userID,
		domain.GoalType(req.GoalType), domain.ActivityType(req.ActivityType), req.Target, domain.TimePeriod(req.TimePeriod),
	)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	// A brand-new goal has no progress yet.
	c.JSON(http.StatusCreated, MapGoalToResponse(&service.GoalWithProgress{Goal: *goal, Remaining: goal.Target}))
}

// ListGoals returns all the user's goals with progress.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve goals.")
		return
	}

	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetGoal returns one of the user's goals with progress.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, goalID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// UpdateGoal fully replaces one of the user's goals (PUT).
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, goalID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	h.applyGoalUpdate(c, userID, goalID,
		domain.GoalType(req.GoalType), domain.ActivityType(req.ActivityType), req.Target, domain.TimePeriod(req.TimePeriod))
}

// PatchGoal partially updates one of the user's goals.
func (h *GoalHandler) PatchGoal(c *gin.Context) {
	userID, goalID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	var req PatchGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	existing, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	goalType := existing.Goal.GoalType
	activityType := existing.Goal.ActivityType
	target := existing.Goal.Target
	timePeriod := existing.Goal.TimePeriod
	if req.GoalType != nil {
		goalType = domain.GoalType(*req.GoalType)
	}
	if req.ActivityType != nil {
		activityType = domain.ActivityType(*req.ActivityType)
	}
	if req.Target != nil {
		target = *req.Target
	}
	if req.TimePeriod != nil {
		timePeriod = domain.TimePeriod(*req.TimePeriod)
	}

	h.applyGoalUpdate(c, userID, goalID, goalType, activityType, target, timePeriod)
}

// DeleteGoal removes one of the user's goals.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, goalID, ok := requireUserAndID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		respondGoalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Helpers ---

func (h *GoalHandler) applyGoalUpdate(c *gin.Context, userID, goalID primitive.ObjectID, goalType domain.GoalType, activityType domain.ActivityType, target float64, timePeriod domain.TimePeriod) {
	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, goalType, activityType, target, timePeriod)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	// Re-read through the service so the response carries fresh progress.
	updated, err := h.goalService.GetGoal(c.Request.Context(), userID, goal.ID)
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(updated))
}

func respondGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case isValidationError(err):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process goal.")
	}
}
