package api

import (
	"net/http"

	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers into the router. Everything except
// registration and login sits behind the JWT middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	activityService service.ActivityService,
	goalService service.GoalService,
	reportService service.TotalsReportService,
	leaderboardService service.LeaderboardService,
	notificationService service.NotificationService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	activityHandler := NewActivityHandler(activityService)
	goalHandler := NewGoalHandler(goalService)
	statsHandler := NewStatsHandler(reportService, leaderboardService)
	notificationHandler := NewNotificationHandler(notificationService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.DELETE("", profileHandler.DeleteAccount)
			profileGroup.POST("/picture", profileHandler.RequestPictureUpload)
		}

		activityGroup := protected.Group("/activities")
		{
			activityGroup.POST("", activityHandler.CreateActivity)
			activityGroup.GET("", activityHandler.ListActivities)
			// Must come before /:id so "total" is not parsed as an ID.
			activityGroup.GET("/total", statsHandler.ActivityTotals)
			activityGroup.GET("/:id", activityHandler.GetActivity)
			activityGroup.PUT("/:id", activityHandler.UpdateActivity)
			activityGroup.PATCH("/:id", activityHandler.PatchActivity)
			activityGroup.DELETE("/:id", activityHandler.DeleteActivity)
		}

		goalGroup := protected.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.GET("/:id", goalHandler.GetGoal)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.PATCH("/:id", goalHandler.PatchGoal)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}

		protected.GET("/leaderboard", statsHandler.Leaderboard)
		protected.GET("/notifications", notificationHandler.ListNotifications)
	}
}
