package api

import (
	"errors"
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the aggregation endpoints: per-user activity
// totals and the cross-user leaderboard.
type StatsHandler struct {
	reportService      service.TotalsReportService
	leaderboardService service.LeaderboardService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(reportService service.TotalsReportService, leaderboardService service.LeaderboardService) *StatsHandler {
	return &StatsHandler{
		reportService:      reportService,
		leaderboardService: leaderboardService,
	}
}

// --- DTOs ---

// GoalProgressResponse is one goal's snapshot inside the totals report.
type GoalProgressResponse struct {
	GoalType        string  `json:"goal_type"`
	TimePeriod      string  `json:"time_period"`
	ActivityType    string  `json:"activity_type"`
	Target          float64 `json:"target"`
	CurrentProgress float64 `json:"current_progress"`
	Remaining       float64 `json:"remaining"`
}

// TotalsResponse mirrors the totals report. StartDate is the window's
// lower bound as YYYY-MM-DD, or "All" for the unbounded period.
type TotalsResponse struct {
	Period        string                 `json:"period"`
	StartDate     string                 `json:"start_date"`
	TotalCalories int                    `json:"total_calories_burned"`
	TotalDistance float64                `json:"total_distance"`
	TotalDuration int                    `json:"total_duration"`
	Goals         []GoalProgressResponse `json:"goals"`
}

// LeaderboardEntryResponse is one ranked user in one metric list.
type LeaderboardEntryResponse struct {
	Username string  `json:"username"`
	Total    float64 `json:"total"`
}

// LeaderboardResponse carries the three top-3 rankings for a period.
type LeaderboardResponse struct {
	Period   string                     `json:"period"`
	Calories []LeaderboardEntryResponse `json:"calories_leaderboard"`
	Distance []LeaderboardEntryResponse `json:"distance_leaderboard"`
	Duration []LeaderboardEntryResponse `json:"duration_leaderboard"`
}

// --- Handler Methods ---

// ActivityTotals serves GET /activities/total?period={all|week|month}.
func (h *StatsHandler) ActivityTotals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period := domain.TimePeriod(c.DefaultQuery("period", "all"))

	report, err := h.reportService.Report(c.Request.Context(), userID, period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute activity totals.")
		}
		return
	}

	resp := TotalsResponse{
		Period:        string(report.Period),
		StartDate:     "All",
		TotalCalories: report.TotalCalories,
		TotalDistance: report.TotalDistance,
		TotalDuration: report.TotalDuration,
		Goals:         make([]GoalProgressResponse, len(report.Goals)),
	}
	if report.StartDate != nil {
		resp.StartDate = report.StartDate.Format("2006-01-02")
	}
	for i, g := range report.Goals {
		resp.Goals[i] = GoalProgressResponse{
			GoalType:        string(g.GoalType),
			TimePeriod:      string(g.TimePeriod),
			ActivityType:    string(g.ActivityType),
			Target:          g.Target,
			CurrentProgress: g.CurrentProgress,
			Remaining:       g.Remaining,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Leaderboard serves GET /leaderboard?period={all|week|month}.
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	period := domain.TimePeriod(c.DefaultQuery("period", "all"))

	board, err := h.leaderboardService.Leaderboard(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute leaderboard.")
		}
		return
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Period:   string(board.Period),
		Calories: mapLeaderboardEntries(board.Calories),
		Distance: mapLeaderboardEntries(board.Distance),
		Duration: mapLeaderboardEntries(board.Duration),
	})
}

func mapLeaderboardEntries(entries []service.LeaderboardEntry) []LeaderboardEntryResponse {
	result := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LeaderboardEntryResponse{Username: e.Username, Total: e.Total}
	}
	return result
}
