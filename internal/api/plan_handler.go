// internal/api/plan_handler.go
package api

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// PlanRequest is used for create and update. Dates are YYYY-MM-DD.
type PlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	IsActive    bool   `json:"isActive"` // Ignored on update
}

type PlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (req PlanRequest) toInput() (service.PlanInput, error) {
	start, err := domain.ParseCivilDate(req.StartDate)
	if err != nil {
		return service.PlanInput{}, fmt.Errorf("%w: startDate must be YYYY-MM-DD", service.ErrInvalidInput)
	}
	end, err := domain.ParseCivilDate(req.EndDate)
	if err != nil {
		return service.PlanInput{}, fmt.Errorf("%w: endDate must be YYYY-MM-DD", service.ErrInvalidInput)
	}
	return service.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		IsActive:    req.IsActive,
	}, nil
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body PlanRequest true "Plan details"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input or start after end"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithServiceError(c, err, "create plan")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, input)
	if err != nil {
		abortWithServiceError(c, err, "create plan")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GetPlans godoc
// @Summary List the user's workout plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve plans")
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetActivePlan godoc
// @Summary Get the user's active plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PlanResponse
// @Failure 404 {object} gin.H "No active plan"
// @Router /plans/active [get]
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve active plan")
		return
	}
	if plan == nil {
		abortWithError(c, http.StatusNotFound, "No active plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetPlan godoc
// @Summary Get a workout plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} gin.H "Not your plan"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// UpdatePlan godoc
// @Summary Update name, description and date range of a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body PlanRequest true "Plan details"
// @Success 200 {object} PlanResponse
// @Failure 409 {object} gin.H "New range leaves trainings outside the plan"
// @Router /plans/{planId} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithServiceError(c, err, "update plan")
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, input)
	if err != nil {
		abortWithServiceError(c, err, "update plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// ActivatePlan godoc
// @Summary Make a plan the user's active plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Router /plans/{planId}/activate [post]
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.SetActivePlan(c.Request.Context(), userID, planID)
	if err != nil {
		abortWithServiceError(c, err, "activate plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a plan and its trainings
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204 "Deleted"
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		abortWithServiceError(c, err, "delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// MapPlanToResponse converts a domain WorkoutPlan to its DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Name:        plan.Name,
		Description: plan.Description,
		StartDate:   plan.StartDate.Format(domain.DateLayout),
		EndDate:     plan.EndDate.Format(domain.DateLayout),
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// MapPlansToResponse never returns nil so the JSON is [] rather than null.
func MapPlansToResponse(plans []domain.WorkoutPlan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = MapPlanToResponse(&plans[i])
	}
	return out
}
