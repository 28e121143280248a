package service

import (
	"alcyxob/run-schedule/internal/domain"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockWorkoutPlanRepository is a mock type for the WorkoutPlanRepository interface
type MockWorkoutPlanRepository struct {
	mock.Mock
}

func (m *MockWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlanRepository) GetActiveByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) SetActive(ctx context.Context, planID primitive.ObjectID, active bool) error {
	args := m.Called(ctx, planID, active)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) DeactivateOtherPlansForOwner(ctx context.Context, ownerID, excludePlanID primitive.ObjectID) error {
	args := m.Called(ctx, ownerID, excludePlanID)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) Delete(ctx context.Context, planID, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, planID, ownerID)
	return args.Error(0)
}

// MockTrainingRepository is a mock type for the TrainingRepository interface
type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	args := m.Called(ctx, training)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Training), args.Error(1)
}

func (m *MockTrainingRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Training, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Training), args.Error(1)
}

func (m *MockTrainingRepository) FindByPlanAndMonth(ctx context.Context, planID primitive.ObjectID, year int, month time.Month) ([]domain.Training, error) {
	args := m.Called(ctx, planID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Training), args.Error(1)
}

func (m *MockTrainingRepository) FindByPlanAndDay(ctx context.Context, planID primitive.ObjectID, day time.Time) (*domain.Training, error) {
	args := m.Called(ctx, planID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Training), args.Error(1)
}

func (m *MockTrainingRepository) Update(ctx context.Context, training *domain.Training) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}

func (m *MockTrainingRepository) MarkAccomplished(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrainingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrainingRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDiaryRepository is a mock type for the DiaryRepository interface
type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDiaryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiaryRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiaryEntry), args.Error(1)
}

// MockFileStorage is a mock type for storage.FileStorage. PutObject keeps the uploaded bytes.
type MockFileStorage struct {
	mock.Mock
	uploaded []byte
}

func (m *MockFileStorage) PutObject(ctx context.Context, objectKey string, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.uploaded = data
	args := m.Called(ctx, objectKey, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// stubLinks builds predictable cell targets.
type stubLinks struct{}

func (stubLinks) AddTraining(planID primitive.ObjectID, date time.Time, ordinal int) string {
	return fmt.Sprintf("add/%s/%d", date.Format(domain.DateLayout), ordinal)
}

func (stubLinks) EditTraining(planID, trainingID primitive.ObjectID, ordinal int) string {
	return fmt.Sprintf("edit/%s/%d", trainingID.Hex(), ordinal)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
