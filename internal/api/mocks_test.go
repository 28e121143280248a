package api

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock services ---

type MockPlanService struct{ mock.Mock }

func (m *MockPlanService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, input service.PlanInput) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID, input)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	return plan, args.Error(1)
}
func (m *MockPlanService) UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, input service.PlanInput) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID, planID, input)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	return plan, args.Error(1)
}
func (m *MockPlanService) GetPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID, planID)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	return plan, args.Error(1)
}
func (m *MockPlanService) ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID)
	plans, _ := args.Get(0).([]domain.WorkoutPlan)
	return plans, args.Error(1)
}
func (m *MockPlanService) SetActivePlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID, planID)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	return plan, args.Error(1)
}
func (m *MockPlanService) GetActivePlan(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID)
	plan, _ := args.Get(0).(*domain.WorkoutPlan)
	return plan, args.Error(1)
}
func (m *MockPlanService) DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error {
	return m.Called(ctx, ownerID, planID).Error(0)
}

type MockTrainingService struct{ mock.Mock }

func (m *MockTrainingService) CreateTraining(ctx context.Context, ownerID, planID primitive.ObjectID, input service.TrainingInput) (*domain.Training, error) {
	args := m.Called(ctx, ownerID, planID, input)
	t, _ := args.Get(0).(*domain.Training)
	return t, args.Error(1)
}
func (m *MockTrainingService) UpdateTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID, input service.TrainingInput) (*domain.Training, error) {
	args := m.Called(ctx, ownerID, planID, trainingID, input)
	t, _ := args.Get(0).(*domain.Training)
	return t, args.Error(1)
}
func (m *MockTrainingService) GetTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) (*domain.Training, error) {
	args := m.Called(ctx, ownerID, planID, trainingID)
	t, _ := args.Get(0).(*domain.Training)
	return t, args.Error(1)
}
func (m *MockTrainingService) ListTrainings(ctx context.Context, ownerID, planID primitive.ObjectID) ([]domain.Training, error) {
	args := m.Called(ctx, ownerID, planID)
	ts, _ := args.Get(0).([]domain.Training)
	return ts, args.Error(1)
}
func (m *MockTrainingService) GetTrainingByDay(ctx context.Context, ownerID, planID primitive.ObjectID, day time.Time) (*domain.Training, error) {
	args := m.Called(ctx, ownerID, planID, day)
	t, _ := args.Get(0).(*domain.Training)
	return t, args.Error(1)
}
func (m *MockTrainingService) DeleteTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) error {
	return m.Called(ctx, ownerID, planID, trainingID).Error(0)
}

type MockCalendarService struct{ mock.Mock }

func (m *MockCalendarService) MonthForOrdinal(ctx context.Context, userID primitive.ObjectID, ordinal int, today time.Time) (*service.CalendarMonth, error) {
	args := m.Called(ctx, userID, ordinal, today)
	month, _ := args.Get(0).(*service.CalendarMonth)
	return month, args.Error(1)
}
func (m *MockCalendarService) MonthForYearMonth(ctx context.Context, userID, planID primitive.ObjectID, ym calendar.YearMonth, today time.Time) (*service.CalendarMonth, error) {
	args := m.Called(ctx, userID, planID, ym, today)
	month, _ := args.Get(0).(*service.CalendarMonth)
	return month, args.Error(1)
}
func (m *MockCalendarService) CurrentMonth(ctx context.Context, userID primitive.ObjectID, today time.Time) (*service.CalendarMonth, error) {
	args := m.Called(ctx, userID, today)
	month, _ := args.Get(0).(*service.CalendarMonth)
	return month, args.Error(1)
}
func (m *MockCalendarService) Bounds(ctx context.Context, userID primitive.ObjectID, today time.Time) (*calendar.Bounds, error) {
	args := m.Called(ctx, userID, today)
	b, _ := args.Get(0).(*calendar.Bounds)
	return b, args.Error(1)
}
func (m *MockCalendarService) MonthCounter(ctx context.Context, userID primitive.ObjectID, today time.Time) (int, error) {
	args := m.Called(ctx, userID, today)
	return args.Int(0), args.Error(1)
}

type MockDiaryService struct{ mock.Mock }

func (m *MockDiaryService) SuggestEntry(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.DiaryEntry, error) {
	args := m.Called(ctx, userID, trainingID)
	e, _ := args.Get(0).(*domain.DiaryEntry)
	return e, args.Error(1)
}
func (m *MockDiaryService) AddEntry(ctx context.Context, userID, trainingID primitive.ObjectID, input service.DiaryInput) (*domain.DiaryEntry, error) {
	args := m.Called(ctx, userID, trainingID, input)
	e, _ := args.Get(0).(*domain.DiaryEntry)
	return e, args.Error(1)
}
func (m *MockDiaryService) ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error) {
	args := m.Called(ctx, userID)
	es, _ := args.Get(0).([]domain.DiaryEntry)
	return es, args.Error(1)
}
func (m *MockDiaryService) ExportEntries(ctx context.Context, userID primitive.ObjectID) (*service.DiaryExport, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(*service.DiaryExport)
	return e, args.Error(1)
}

// --- Helpers ---

// asUser stands in for AuthMiddleware in handler tests.
func asUser(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Next()
	}
}

func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recordRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
