// internal/api/diary_handler.go
package api

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DiaryHandler struct {
	diaryService service.DiaryService
}

func NewDiaryHandler(diaryService service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

// --- DTOs ---

// DiaryEntryRequest logs a training. Omitted numbers default to the planned totals.
type DiaryEntryRequest struct {
	Date     string   `json:"date"` // YYYY-MM-DD, defaults to the training day
	Distance *float64 `json:"distance"`
	Time     *int     `json:"time"`
	Comments string   `json:"comments"`
}

type DiaryEntryResponse struct {
	ID           string    `json:"id,omitempty"` // Empty for a suggestion
	TrainingID   string    `json:"trainingId"`
	Date         string    `json:"date"`
	TrainingInfo string    `json:"trainingInfo"`
	Distance     float64   `json:"distance"`
	Time         int       `json:"time"`
	Comments     string    `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// SuggestEntry godoc
// @Summary Prefilled diary entry for a training
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Param trainingId path string true "Training ID"
// @Success 200 {object} DiaryEntryResponse
// @Failure 404 {object} gin.H "Training not found"
// @Router /trainings/{trainingId}/diary [get]
func (h *DiaryHandler) SuggestEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := objectIDParam(c, "trainingId")
	if !ok {
		return
	}
	entry, err := h.diaryService.SuggestEntry(c.Request.Context(), userID, trainingID)
	if err != nil {
		abortWithServiceError(c, err, "prepare diary entry")
		return
	}
	c.JSON(http.StatusOK, MapDiaryEntryToResponse(entry))
}

// AddEntry godoc
// @Summary Log a training in the diary
// @Description Marks the training accomplished.
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainingId path string true "Training ID"
// @Param entry body DiaryEntryRequest false "What was done"
// @Success 201 {object} DiaryEntryResponse
// @Router /trainings/{trainingId}/diary [post]
func (h *DiaryHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := objectIDParam(c, "trainingId")
	if !ok {
		return
	}
	var req DiaryEntryRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	input := service.DiaryInput{Distance: req.Distance, Time: req.Time, Comments: req.Comments}
	if req.Date != "" {
		d, err := domain.ParseCivilDate(req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
			return
		}
		input.Date = d
	}

	entry, err := h.diaryService.AddEntry(c.Request.Context(), userID, trainingID, input)
	if err != nil {
		abortWithServiceError(c, err, "save diary entry")
		return
	}
	c.JSON(http.StatusCreated, MapDiaryEntryToResponse(entry))
}

// GetEntries godoc
// @Summary The user's training diary
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Success 200 {array} DiaryEntryResponse
// @Router /diary [get]
func (h *DiaryHandler) GetEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.diaryService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err, "retrieve diary")
		return
	}
	out := make([]DiaryEntryResponse, len(entries))
	for i := range entries {
		out[i] = MapDiaryEntryToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, out)
}

// ExportEntries godoc
// @Summary Export the diary as CSV
// @Description Uploads the CSV to object storage and returns a temporary download URL.
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Success 201 {object} service.DiaryExport
// @Failure 503 {object} gin.H "Export storage not configured"
// @Router /diary/export [post]
func (h *DiaryHandler) ExportEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	export, err := h.diaryService.ExportEntries(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err, "export diary")
		return
	}
	c.JSON(http.StatusCreated, export)
}

// MapDiaryEntryToResponse converts a domain DiaryEntry to its DTO.
func MapDiaryEntryToResponse(e *domain.DiaryEntry) DiaryEntryResponse {
	resp := DiaryEntryResponse{
		TrainingID:   e.TrainingID.Hex(),
		Date:         e.Date.Format(domain.DateLayout),
		TrainingInfo: e.TrainingInfo,
		Distance:     e.Distance,
		Time:         e.Time,
		Comments:     e.Comments,
		CreatedAt:    e.CreatedAt,
	}
	if !e.ID.IsZero() {
		resp.ID = e.ID.Hex()
	}
	return resp
}
