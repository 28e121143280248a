package api

import (
	"alcyxob/run-schedule/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth     service.AuthService
	Plan     service.PlanService
	Training service.TrainingService
	Calendar service.CalendarService
	Diary    service.DiaryService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	planHandler := NewPlanHandler(services.Plan)
	trainingHandler := NewTrainingHandler(services.Training)
	calendarHandler := NewCalendarHandler(services.Calendar)
	diaryHandler := NewDiaryHandler(services.Diary)

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
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.GetProfile)
		protected.PUT("/me", authHandler.UpdateProfile)
		protected.PUT("/me/password", authHandler.ChangePassword)

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlans)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.PUT("/:planId", planHandler.UpdatePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.POST("/:planId/activate", planHandler.ActivatePlan)

			// --- Trainings of a plan ---
			planGroup.POST("/:planId/trainings", trainingHandler.CreateTraining)
			planGroup.GET("/:planId/trainings", trainingHandler.GetTrainings)
			planGroup.GET("/:planId/trainings/day/:date", trainingHandler.GetTrainingByDay)
			planGroup.GET("/:planId/trainings/:trainingId", trainingHandler.GetTraining)
			planGroup.PUT("/:planId/trainings/:trainingId", trainingHandler.UpdateTraining)
			planGroup.DELETE("/:planId/trainings/:trainingId", trainingHandler.DeleteTraining)

			planGroup.GET("/:planId/calendar/:year/:month", calendarHandler.GetPlanMonth)
		}

		// --- Calendar of the active plan ---
		calendarGroup := protected.Group("/calendar")
		{
			calendarGroup.GET("", calendarHandler.GetCurrentMonth)
			calendarGroup.GET("/bounds", calendarHandler.GetBounds)
			calendarGroup.GET("/months/:ordinal", calendarHandler.GetMonthByOrdinal)
		}

		// --- Diary ---
		protected.GET("/trainings/:trainingId/diary", diaryHandler.SuggestEntry)
		protected.POST("/trainings/:trainingId/diary", diaryHandler.AddEntry)
		protected.GET("/diary", diaryHandler.GetEntries)
		protected.POST("/diary/export", diaryHandler.ExportEntries)
	}
}
