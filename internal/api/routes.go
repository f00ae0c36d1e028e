package api

import (
	"alcyxob/training-calendar/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	calendarService service.CalendarService,
	workoutService service.WorkoutService,
	dayService service.DayService,
) {
	authHandler := NewAuthHandler(authService)
	calendarHandler := NewCalendarHandler(calendarService)
	workoutHandler := NewWorkoutHandler(workoutService, dayService)

	router.Use(RequestIDMiddleware())
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
		protected.GET("/me", func(c *gin.Context) {
			ownerID, err := getOwnerIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": ownerID.Hex()})
		})

		// --- Calendar views ---
		// GET /api/v1/calendar/{kind}?zone=A&force=false&window=current
		protected.GET("/calendar/:kind", calendarHandler.GetCalendar)
		// POST /api/v1/calendar
		protected.POST("/calendar", calendarHandler.CreateCalendar)

		// --- Workout logging (history zone) ---
		protected.POST("/workouts", workoutHandler.LogWorkout)

		// --- Day details and period tags ---
		protected.PATCH("/days/:id", workoutHandler.UpdateDay)
		protected.GET("/periods", workoutHandler.ListPeriods)
	}
}
