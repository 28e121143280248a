// internal/api/training_handler.go
package api

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingHandler struct {
	trainingService service.TrainingService
}

func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- DTOs ---

// TrainingRequest is used for create and update.
type TrainingRequest struct {
	Day                string   `json:"day" binding:"required"` // YYYY-MM-DD
	TrainingMain       string   `json:"trainingMain" binding:"required"`
	DistanceMain       *float64 `json:"distanceMain"`
	TimeMain           *int     `json:"timeMain"`
	TrainingAdditional string   `json:"trainingAdditional"`
	DistanceAdditional *float64 `json:"distanceAdditional"`
	TimeAdditional     *int     `json:"timeAdditional"`
}

type TrainingResponse struct {
	ID                 string    `json:"id"`
	WorkoutPlanID      string    `json:"workoutPlanId"`
	Day                string    `json:"day"`
	TrainingMain       string    `json:"trainingMain"`
	DistanceMain       *float64  `json:"distanceMain,omitempty"`
	TimeMain           *int      `json:"timeMain,omitempty"`
	TrainingAdditional string    `json:"trainingAdditional,omitempty"`
	DistanceAdditional *float64  `json:"distanceAdditional,omitempty"`
	TimeAdditional     *int      `json:"timeAdditional,omitempty"`
	Info               string    `json:"info"`
	Accomplished       bool      `json:"accomplished"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (req TrainingRequest) toInput() (service.TrainingInput, error) {
	day, err := domain.ParseCivilDate(req.Day)
	if err != nil {
		return service.TrainingInput{}, fmt.Errorf("%w: day must be YYYY-MM-DD", service.ErrInvalidInput)
	}
	return service.TrainingInput{
		Day:                day,
		TrainingMain:       req.TrainingMain,
		DistanceMain:       req.DistanceMain,
		TimeMain:           req.TimeMain,
		TrainingAdditional: req.TrainingAdditional,
		DistanceAdditional: req.DistanceAdditional,
		TimeAdditional:     req.TimeAdditional,
	}, nil
}

// planScope resolves the user and plan of a /plans/:planId/... request.
func planScope(c *gin.Context) (userID, planID primitive.ObjectID, ok bool) {
	if userID, ok = currentUserID(c); !ok {
		return
	}
	planID, ok = objectIDParam(c, "planId")
	return
}

// --- Handler Methods ---

// CreateTraining godoc
// @Summary Add a training to a plan day
// @Tags Trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param training body TrainingRequest true "Training details"
// @Success 201 {object} TrainingResponse
// @Failure 400 {object} gin.H "Invalid input or day outside the plan"
// @Failure 409 {object} gin.H "Day already has a training"
// @Router /plans/{planId}/trainings [post]
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithServiceError(c, err, "create training")
		return
	}

	training, err := h.trainingService.CreateTraining(c.Request.Context(), userID, planID, input)
	if err != nil {
		abortWithServiceError(c, err, "create training")
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToResponse(training))
}

// GetTrainings godoc
// @Summary List the trainings of a plan
// @Description Ordered by day. With ?day=YYYY-MM-DD only that day's training is listed.
// @Tags Trainings
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param day query string false "Restrict to one day"
// @Success 200 {array} TrainingResponse
// @Router /plans/{planId}/trainings [get]
func (h *TrainingHandler) GetTrainings(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}

	if dayStr := c.Query("day"); dayStr != "" {
		day, err := domain.ParseCivilDate(dayStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid day format, expected YYYY-MM-DD.")
			return
		}
		training, err := h.trainingService.GetTrainingByDay(c.Request.Context(), userID, planID, day)
		if errors.Is(err, service.ErrTrainingNotFound) {
			c.JSON(http.StatusOK, []TrainingResponse{})
			return
		}
		if err != nil {
			abortWithServiceError(c, err, "retrieve trainings")
			return
		}
		c.JSON(http.StatusOK, []TrainingResponse{MapTrainingToResponse(training)})
		return
	}

	trainings, err := h.trainingService.ListTrainings(c.Request.Context(), userID, planID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve trainings")
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToResponse(trainings))
}

// GetTrainingByDay godoc
// @Summary Get the training of a plan day
// @Tags Trainings
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} TrainingResponse
// @Failure 404 {object} gin.H "No training on that day"
// @Failure 409 {object} gin.H "More than one training on that day"
// @Router /plans/{planId}/trainings/day/{date} [get]
func (h *TrainingHandler) GetTrainingByDay(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	day, err := domain.ParseCivilDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
		return
	}
	training, err := h.trainingService.GetTrainingByDay(c.Request.Context(), userID, planID, day)
	if err != nil {
		abortWithServiceError(c, err, "retrieve training")
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(training))
}

// GetTraining godoc
// @Summary Get a training
// @Tags Trainings
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param trainingId path string true "Training ID"
// @Success 200 {object} TrainingResponse
// @Router /plans/{planId}/trainings/{trainingId} [get]
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	trainingID, ok := objectIDParam(c, "trainingId")
	if !ok {
		return
	}
	training, err := h.trainingService.GetTraining(c.Request.Context(), userID, planID, trainingID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve training")
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(training))
}

// UpdateTraining godoc
// @Summary Update a training
// @Tags Trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param trainingId path string true "Training ID"
// @Param training body TrainingRequest true "Training details"
// @Success 200 {object} TrainingResponse
// @Router /plans/{planId}/trainings/{trainingId} [put]
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	trainingID, ok := objectIDParam(c, "trainingId")
	if !ok {
		return
	}
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithServiceError(c, err, "update training")
		return
	}

	training, err := h.trainingService.UpdateTraining(c.Request.Context(), userID, planID, trainingID, input)
	if err != nil {
		abortWithServiceError(c, err, "update training")
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(training))
}

// DeleteTraining godoc
// @Summary Delete a training
// @Tags Trainings
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param trainingId path string true "Training ID"
// @Success 204 "Deleted"
// @Router /plans/{planId}/trainings/{trainingId} [delete]
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	userID, planID, ok := planScope(c)
	if !ok {
		return
	}
	trainingID, ok := objectIDParam(c, "trainingId")
	if !ok {
		return
	}
	if err := h.trainingService.DeleteTraining(c.Request.Context(), userID, planID, trainingID); err != nil {
		abortWithServiceError(c, err, "delete training")
		return
	}
	c.Status(http.StatusNoContent)
}

// MapTrainingToResponse converts a domain Training to its DTO.
func MapTrainingToResponse(t *domain.Training) TrainingResponse {
	if t == nil {
		return TrainingResponse{}
	}
	return TrainingResponse{
		ID:                 t.ID.Hex(),
		WorkoutPlanID:      t.WorkoutPlanID.Hex(),
		Day:                t.Day.Format(domain.DateLayout),
		TrainingMain:       t.TrainingMain,
		DistanceMain:       t.DistanceMain,
		TimeMain:           t.TimeMain,
		TrainingAdditional: t.TrainingAdditional,
		DistanceAdditional: t.DistanceAdditional,
		TimeAdditional:     t.TimeAdditional,
		Info:               t.Info(),
		Accomplished:       t.Accomplished,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func MapTrainingsToResponse(trainings []domain.Training) []TrainingResponse {
	out := make([]TrainingResponse, len(trainings))
	for i := range trainings {
		out[i] = MapTrainingToResponse(&trainings[i])
	}
	return out
}
