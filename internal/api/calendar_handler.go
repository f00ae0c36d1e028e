package api

import (
	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/schedule"
	"alcyxob/training-calendar/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CalendarHandler holds the calendar service dependency.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// --- DTOs for API (Data Transfer Objects) ---

const dateLayout = "2006-01-02"

// CreateCalendarRequest defines the expected JSON for user-initiated plan
// creation with a custom start date and week count.
type CreateCalendarRequest struct {
	Kind      string `json:"kind" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	WeekCount int    `json:"weekCount" binding:"required,min=1,max=52"`
}

// WorkoutResponse is the DTO for a workout record attached under a day.
type WorkoutResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayResponse is the DTO for a single calendar day.
type DayResponse struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"`
	Zone          domain.Zone       `json:"zone"`
	DayOfWeek     int               `json:"dayOfWeek"`
	WeekNumber    int               `json:"weekNumber"`
	PeriodID      string            `json:"periodId,omitempty"`
	Weather       string            `json:"weather"`
	FeelingStatus string            `json:"feelingStatus"`
	Notes         string            `json:"notes,omitempty"`
	Workouts      []WorkoutResponse `json:"workouts"`
}

// WeekResponse is the DTO for a plan week. OriginalWeekNumber is set only
// on windowed responses, where WeekNumber is the renumbered 1..3 frame.
type WeekResponse struct {
	ID                 string        `json:"id"`
	WeekNumber         int           `json:"weekNumber"`
	OriginalWeekNumber int           `json:"originalWeekNumber,omitempty"`
	Days               []DayResponse `json:"days"`
}

// PlanResponse is the DTO for a full plan tree.
type PlanResponse struct {
	ID        string          `json:"id"`
	Kind      domain.PlanKind `json:"kind"`
	Zone      domain.Zone     `json:"zone"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	CreatedAt time.Time       `json:"createdAt"`
	Weeks     []WeekResponse  `json:"weeks"`
	Days      []DayResponse   `json:"days,omitempty"`
}

// --- Handler Methods ---

// GetCalendar loads (materializing on first access) the calendar view of
// the given kind for the authenticated user.
// GET /api/v1/calendar/:kind?zone=A&force=false&window=current
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	kind, ok := domain.ParsePlanKind(c.Param("kind"))
	if !ok {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown plan kind %q.", c.Param("kind")))
		return
	}

	var zoneHint domain.Zone
	if z := c.Query("zone"); z != "" {
		zoneHint, ok = domain.ParseZone(z)
		if !ok {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown zone %q.", z))
			return
		}
	}

	force := false
	if f := c.Query("force"); f != "" {
		force, err = strconv.ParseBool(f)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Parameter 'force' must be a boolean.")
			return
		}
	}

	windowed := false
	switch c.Query("window") {
	case "":
	case "current":
		windowed = true
	default:
		abortWithError(c, http.StatusBadRequest, "Parameter 'window' must be 'current' when present.")
		return
	}

	tree, err := h.calendarService.Get(c.Request.Context(), ownerID, kind, zoneHint, force, windowed)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlanKind) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load calendar.")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanTreeToResponse(tree))
}

// CreateCalendar materializes a plan with a caller-chosen start date and
// week count. The start date is forced onto its Monday.
// POST /api/v1/calendar
func (h *CalendarHandler) CreateCalendar(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	kind, ok := domain.ParsePlanKind(req.Kind)
	if !ok {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown plan kind %q.", req.Kind))
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Parameter 'startDate' must be formatted YYYY-MM-DD.")
		return
	}

	tree, err := h.calendarService.Create(c.Request.Context(), ownerID, kind, startDate, req.WeekCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlanKind), errors.Is(err, service.ErrInvalidWeekCount):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create calendar.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanTreeToResponse(tree))
}

// --- DTO mapping ---

// MapPlanTreeToResponse converts a service PlanTree to the response DTO.
// When a window projection is present it replaces the full week list, so
// downstream consumers always see the stable Week 1/2/3 frame.
func MapPlanTreeToResponse(tree *service.PlanTree) PlanResponse {
	plan := tree.Plan
	resp := PlanResponse{
		ID:        plan.ID.Hex(),
		Kind:      plan.Kind,
		Zone:      plan.Zone,
		StartDate: plan.StartDate.Format(dateLayout),
		EndDate:   plan.EndDate.Format(dateLayout),
		CreatedAt: plan.CreatedAt,
	}

	if tree.Window != nil {
		resp.Weeks = make([]WeekResponse, len(tree.Window))
		for i, ww := range tree.Window {
			resp.Weeks[i] = mapWindowWeekToResponse(ww)
		}
	} else {
		resp.Weeks = make([]WeekResponse, len(plan.Weeks))
		for i, w := range plan.Weeks {
			resp.Weeks[i] = mapWeekToResponse(w)
		}
	}

	if len(plan.Days) > 0 {
		resp.Days = mapDaysToResponse(plan.Days)
	}
	return resp
}

func mapWeekToResponse(w domain.Week) WeekResponse {
	return WeekResponse{
		ID:         w.ID.Hex(),
		WeekNumber: w.WeekNumber,
		Days:       mapDaysToResponse(w.Days),
	}
}

func mapWindowWeekToResponse(ww schedule.WindowWeek) WeekResponse {
	return WeekResponse{
		ID:                 ww.Week.ID.Hex(),
		WeekNumber:         ww.WeekNumber,
		OriginalWeekNumber: ww.OriginalWeekNumber,
		Days:               mapDaysToResponse(ww.Days),
	}
}

func mapDaysToResponse(days []domain.Day) []DayResponse {
	out := make([]DayResponse, len(days))
	for i, d := range days {
		out[i] = MapDayToResponse(&d)
	}
	return out
}

// MapDayToResponse converts a domain.Day to its DTO.
func MapDayToResponse(d *domain.Day) DayResponse {
	workouts := make([]WorkoutResponse, len(d.Workouts))
	for i, w := range d.Workouts {
		workouts[i] = WorkoutResponse{
			ID:        w.ID.Hex(),
			Name:      w.Name,
			Sport:     w.Sport,
			Notes:     w.Notes,
			CreatedAt: w.CreatedAt,
		}
	}
	resp := DayResponse{
		ID:            d.ID.Hex(),
		Date:          d.Date.Format(dateLayout),
		Zone:          d.Zone,
		DayOfWeek:     d.DayOfWeek,
		Weather:       d.Weather,
		FeelingStatus: d.FeelingStatus,
		Notes:         d.Notes,
		WeekNumber:    d.WeekNumber,
		Workouts:      workouts,
	}
	if !d.PeriodID.IsZero() {
		resp.PeriodID = d.PeriodID.Hex()
	}
	return resp
}
