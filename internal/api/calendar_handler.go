// internal/api/calendar_handler.go
package api

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CalendarHandler struct {
	calendarService service.CalendarService
	now             func() time.Time
}

func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, now: time.Now}
}

// CalendarResponse is a rendered plan month.
type CalendarResponse struct {
	Plan        PlanResponse        `json:"plan"`
	Month       *calendar.MonthView `json:"month"`
	Bounds      calendar.Bounds     `json:"bounds"`
	Navigation  calendar.Navigation `json:"navigation"`
	PrevOrdinal *int                `json:"prevOrdinal,omitempty"`
	NextOrdinal *int                `json:"nextOrdinal,omitempty"`
}

// NoPlanResponse is returned by the active-plan calendar routes when the user
// has no active plan. The counter is where a page should open once one exists.
type NoPlanResponse struct {
	Plan         *PlanResponse `json:"plan"`
	MonthCounter int           `json:"monthCounter"`
}

func (h *CalendarHandler) today() time.Time {
	return domain.CivilDate(h.now().UTC())
}

// GetCurrentMonth godoc
// @Summary Calendar of the active plan at today's month
// @Description Today before the plan start opens the first month, after its end the last one.
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CalendarResponse
// @Failure 409 {object} gin.H "Data consistency problem (two trainings on one day)"
// @Router /calendar [get]
func (h *CalendarHandler) GetCurrentMonth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	month, err := h.calendarService.CurrentMonth(c.Request.Context(), userID, h.today())
	if err != nil {
		abortWithServiceError(c, err, "render calendar")
		return
	}
	h.respond(c, userID, month)
}

// GetMonthByOrdinal godoc
// @Summary Calendar of the N-th month of the active plan
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param ordinal path int true "Plan month, the first month is 1"
// @Success 200 {object} CalendarResponse
// @Failure 404 {object} gin.H "Month outside the plan"
// @Router /calendar/months/{ordinal} [get]
func (h *CalendarHandler) GetMonthByOrdinal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid month ordinal.")
		return
	}
	month, err := h.calendarService.MonthForOrdinal(c.Request.Context(), userID, ordinal, h.today())
	if err != nil {
		abortWithServiceError(c, err, "render calendar")
		return
	}
	h.respond(c, userID, month)
}

// GetBounds godoc
// @Summary Month ordinal range of the active plan
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} calendar.Bounds
// @Failure 404 {object} gin.H "No active plan"
// @Router /calendar/bounds [get]
func (h *CalendarHandler) GetBounds(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bounds, err := h.calendarService.Bounds(c.Request.Context(), userID, h.today())
	if err != nil {
		abortWithServiceError(c, err, "compute plan bounds")
		return
	}
	if bounds == nil {
		abortWithError(c, http.StatusNotFound, "No active plan.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"first":         bounds.First,
		"last":          bounds.Last,
		"current":       bounds.Current,
		"currentInPlan": bounds.CurrentInPlan(),
	})
}

// GetPlanMonth godoc
// @Summary Calendar of any owned plan for a calendar month
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} CalendarResponse
// @Failure 400 {object} gin.H "Invalid month"
// @Failure 404 {object} gin.H "Plan missing or month outside it"
// @Router /plans/{planId}/calendar/{year}/{month} [get]
func (h *CalendarHandler) GetPlanMonth(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	year, errY := strconv.Atoi(c.Param("year"))
	mon, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil {
		abortWithError(c, http.StatusBadRequest, "Year and month must be numbers.")
		return
	}

	ym := calendar.YearMonth{Year: year, Month: time.Month(mon)}
	month, err := h.calendarService.MonthForYearMonth(c.Request.Context(), userID, planID, ym, h.today())
	if err != nil {
		abortWithServiceError(c, err, "render calendar")
		return
	}
	h.respond(c, userID, month)
}

func (h *CalendarHandler) respond(c *gin.Context, userID primitive.ObjectID, month *service.CalendarMonth) {
	if month == nil {
		counter, err := h.calendarService.MonthCounter(c.Request.Context(), userID, h.today())
		if err != nil {
			abortWithServiceError(c, err, "render calendar")
			return
		}
		c.JSON(http.StatusOK, NoPlanResponse{MonthCounter: counter})
		return
	}
	c.JSON(http.StatusOK, CalendarResponse{
		Plan:        MapPlanToResponse(month.Plan),
		Month:       month.View,
		Bounds:      month.Bounds,
		Navigation:  month.Navigation,
		PrevOrdinal: month.PrevOrdinal,
		NextOrdinal: month.NextOrdinal,
	})
}
