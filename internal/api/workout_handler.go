package api

import (
	"alcyxob/training-calendar/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler exposes the workout-logging and day-detail surface.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	dayService     service.DayService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, dayService service.DayService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		dayService:     dayService,
	}
}

// --- DTOs ---

// LogWorkoutRequest defines the expected JSON for logging a session.
type LogWorkoutRequest struct {
	Date  string `json:"date" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Sport string `json:"sport"`
	Notes string `json:"notes"`
}

// UpdateDayRequest carries the mutable free-form fields of a day. Absent
// fields are left untouched.
type UpdateDayRequest struct {
	Weather       *string `json:"weather"`
	FeelingStatus *string `json:"feelingStatus"`
	Notes         *string `json:"notes"`
	PeriodID      *string `json:"periodId"`
}

// PeriodResponse is the DTO for a period tag.
type PeriodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// LogWorkout records a completed session on a date; the day row in the
// history zone is created on demand.
// POST /api/v1/workouts
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Parameter 'date' must be formatted YYYY-MM-DD.")
		return
	}

	day, err := h.workoutService.LogWorkout(c.Request.Context(), ownerID, date, req.Name, req.Sport, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapDayToResponse(day))
}

// UpdateDay patches the free-form fields of a day the user owns.
// PATCH /api/v1/days/:id
func (h *WorkoutHandler) UpdateDay(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := service.DayPatch{
		Weather:       req.Weather,
		FeelingStatus: req.FeelingStatus,
		Notes:         req.Notes,
	}
	if req.PeriodID != nil {
		periodID, err := primitive.ObjectIDFromHex(*req.PeriodID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid period ID format.")
			return
		}
		patch.PeriodID = &periodID
	}

	day, err := h.dayService.UpdateDetails(c.Request.Context(), ownerID, dayID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDayNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUnknownPeriod):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update day.")
		}
		return
	}

	c.JSON(http.StatusOK, MapDayToResponse(day))
}

// ListPeriods returns the user's period tags.
// GET /api/v1/periods
func (h *WorkoutHandler) ListPeriods(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	periods, err := h.dayService.ListPeriods(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve periods.")
		return
	}

	out := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		out[i] = PeriodResponse{
			ID:        p.ID.Hex(),
			Name:      p.Name,
			Color:     p.Color,
			IsDefault: p.IsDefault,
			CreatedAt: p.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, out)
}
