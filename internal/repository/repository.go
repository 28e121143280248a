package repository

import (
	"alcyxob/run-schedule/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// ErrAmbiguous means a lookup expected to match one document matched several.
	ErrAmbiguous = RepositoryError("more than one document matched")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// WorkoutPlanRepository defines the interface for interacting with workout plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetActiveByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	SetActive(ctx context.Context, planID primitive.ObjectID, active bool) error
	DeactivateOtherPlansForOwner(ctx context.Context, ownerID, excludePlanID primitive.ObjectID) error
	Delete(ctx context.Context, planID, ownerID primitive.ObjectID) error
}

// TrainingRepository defines the interface for interacting with training data.
// It also serves the calendar as its calendar.TrainingFinder.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Training, error) // Ordered by day
	FindByPlanAndMonth(ctx context.Context, planID primitive.ObjectID, year int, month time.Month) ([]domain.Training, error)
	FindByPlanAndDay(ctx context.Context, planID primitive.ObjectID, day time.Time) (*domain.Training, error)
	Update(ctx context.Context, training *domain.Training) error
	MarkAccomplished(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
}

// DiaryRepository defines the interface for interacting with training diary entries.
type DiaryRepository interface {
	Create(ctx context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DiaryEntry, error) // Ordered by date
	Delete(ctx context.Context, id primitive.ObjectID) error
}
