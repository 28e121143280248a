package service

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingNotFound     = errors.New("training not found")
	ErrTrainingOutsidePlan  = errors.New("training day lies outside the plan range")
	ErrTrainingDayTaken     = errors.New("plan already has a training on this day")
	ErrAmbiguousTrainingDay = calendar.ErrAmbiguousTrainingDay
)

// TrainingInput carries the editable fields of a training.
type TrainingInput struct {
	Day                time.Time
	TrainingMain       string
	DistanceMain       *float64
	TimeMain           *int
	TrainingAdditional string
	DistanceAdditional *float64
	TimeAdditional     *int
}

type TrainingService interface {
	CreateTraining(ctx context.Context, ownerID, planID primitive.ObjectID, input TrainingInput) (*domain.Training, error)
	UpdateTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID, input TrainingInput) (*domain.Training, error)
	GetTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) (*domain.Training, error)
	ListTrainings(ctx context.Context, ownerID, planID primitive.ObjectID) ([]domain.Training, error)
	GetTrainingByDay(ctx context.Context, ownerID, planID primitive.ObjectID, day time.Time) (*domain.Training, error)
	DeleteTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) error
}

type trainingService struct {
	planRepo     repository.WorkoutPlanRepository
	trainingRepo repository.TrainingRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(planRepo repository.WorkoutPlanRepository, trainingRepo repository.TrainingRepository) TrainingService {
	return &trainingService{
		planRepo:     planRepo,
		trainingRepo: trainingRepo,
	}
}

func validateTrainingInput(plan *domain.WorkoutPlan, input *TrainingInput) error {
	input.TrainingMain = strings.TrimSpace(input.TrainingMain)
	input.TrainingAdditional = strings.TrimSpace(input.TrainingAdditional)
	if input.TrainingMain == "" {
		return fmt.Errorf("%w: main training type is required", ErrInvalidInput)
	}
	if input.Day.IsZero() {
		return fmt.Errorf("%w: training day is required", ErrInvalidInput)
	}
	for _, d := range []*float64{input.DistanceMain, input.DistanceAdditional} {
		if d != nil && *d <= 0 {
			return fmt.Errorf("%w: distance must be positive", ErrInvalidInput)
		}
	}
	for _, m := range []*int{input.TimeMain, input.TimeAdditional} {
		if m != nil && *m <= 0 {
			return fmt.Errorf("%w: time must be positive", ErrInvalidInput)
		}
	}
	input.Day = domain.CivilDate(input.Day)
	if !plan.ContainsDay(input.Day) {
		return ErrTrainingOutsidePlan
	}
	return nil
}

func (input TrainingInput) applyTo(t *domain.Training) {
	t.Day = input.Day
	t.TrainingMain = input.TrainingMain
	t.DistanceMain = input.DistanceMain
	t.TimeMain = input.TimeMain
	t.TrainingAdditional = input.TrainingAdditional
	t.DistanceAdditional = input.DistanceAdditional
	t.TimeAdditional = input.TimeAdditional
}

// CreateTraining adds a training to a plan day.
func (s *trainingService) CreateTraining(ctx context.Context, ownerID, planID primitive.ObjectID, input TrainingInput) (*domain.Training, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if err := validateTrainingInput(plan, &input); err != nil {
		return nil, err
	}

	training := &domain.Training{WorkoutPlanID: planID}
	input.applyTo(training)

	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainingDayTaken
		}
		return nil, err
	}
	training.ID = id
	return training, nil
}

// UpdateTraining edits a training. Moving it onto a taken day fails.
func (s *trainingService) UpdateTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID, input TrainingInput) (*domain.Training, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
	if err != nil {
		return nil, err
	}
	training, err := s.trainingOfPlan(ctx, planID, trainingID)
	if err != nil {
		return nil, err
	}
	if err := validateTrainingInput(plan, &input); err != nil {
		return nil, err
	}

	input.applyTo(training)
	if err := s.trainingRepo.Update(ctx, training); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrTrainingDayTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return training, nil
}

// GetTraining returns one training of an owned plan.
func (s *trainingService) GetTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) (*domain.Training, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID); err != nil {
		return nil, err
	}
	return s.trainingOfPlan(ctx, planID, trainingID)
}

// ListTrainings returns the plan's trainings ordered by day.
func (s *trainingService) ListTrainings(ctx context.Context, ownerID, planID primitive.ObjectID) ([]domain.Training, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID); err != nil {
		return nil, err
	}
	return s.trainingRepo.GetByPlanID(ctx, planID)
}

// GetTrainingByDay returns the plan's training on day.
func (s *trainingService) GetTrainingByDay(ctx context.Context, ownerID, planID primitive.ObjectID, day time.Time) (*domain.Training, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
	if err != nil {
		return nil, err
	}
	training, err := calendar.TrainingOnDay(ctx, s.trainingRepo, plan, day)
	if err != nil {
		return nil, err
	}
	if training == nil {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}

// DeleteTraining removes a training from an owned plan.
func (s *trainingService) DeleteTraining(ctx context.Context, ownerID, planID, trainingID primitive.ObjectID) error {
	if _, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID); err != nil {
		return err
	}
	if _, err := s.trainingOfPlan(ctx, planID, trainingID); err != nil {
		return err
	}
	if err := s.trainingRepo.Delete(ctx, trainingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}
	return nil
}

// trainingOfPlan hides trainings of other plans behind ErrTrainingNotFound.
func (s *trainingService) trainingOfPlan(ctx context.Context, planID, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if training.WorkoutPlanID != planID {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}
