package service

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this workout plan")
	ErrInvalidPlanRange = errors.New("plan start date must not be after its end date")
	// ErrPlanRangeExcludesTrainings blocks a range edit that would strand trainings outside the plan.
	ErrPlanRangeExcludesTrainings = errors.New("new plan range leaves existing trainings outside the plan")
)

// PlanInput carries the editable fields of a workout plan.
type PlanInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool // Only honoured on create; use SetActivePlan afterwards
}

type PlanService interface {
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	SetActivePlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetActivePlan(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error
}

type planService struct {
	planRepo     repository.WorkoutPlanRepository
	trainingRepo repository.TrainingRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.WorkoutPlanRepository, trainingRepo repository.TrainingRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		trainingRepo: trainingRepo,
	}
}

func validatePlanInput(input *PlanInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: plan name is required", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return fmt.Errorf("%w: plan start and end dates are required", ErrInvalidInput)
	}
	input.StartDate = domain.CivilDate(input.StartDate)
	input.EndDate = domain.CivilDate(input.EndDate)
	if input.StartDate.After(input.EndDate) {
		return ErrInvalidPlanRange
	}
	return nil
}

// CreatePlan stores a new plan. An active plan deactivates the owner's others.
func (s *planService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error) {
	if err := validatePlanInput(&input); err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    input.IsActive,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	if plan.IsActive {
		if err := s.planRepo.DeactivateOtherPlansForOwner(ctx, ownerID, planID); err != nil {
			log.Printf("ERROR: Failed to deactivate other plans of user %s: %v", ownerID.Hex(), err)
			return nil, err
		}
	}
	return plan, nil
}

// UpdatePlan edits name, description and range. Trainings must stay inside the new range.
func (s *planService) UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error) {
	if err := validatePlanInput(&input); err != nil {
		return nil, err
	}
	plan, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
	if err != nil {
		return nil, err
	}

	plan.Name = input.Name
	plan.Description = strings.TrimSpace(input.Description)
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate

	trainings, err := s.trainingRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	for i := range trainings {
		if !plan.ContainsDay(trainings[i].Day) {
			return nil, ErrPlanRangeExcludesTrainings
		}
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetPlan returns a plan the user owns.
func (s *planService) GetPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
}

// ListPlans returns all plans of the user.
func (s *planService) ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

// SetActivePlan makes planID the user's only active plan.
func (s *planService) SetActivePlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.DeactivateOtherPlansForOwner(ctx, ownerID, planID); err != nil {
		return nil, err
	}
	if !plan.IsActive {
		if err := s.planRepo.SetActive(ctx, planID, true); err != nil {
			return nil, err
		}
		plan.IsActive = true
	}
	return plan, nil
}

// GetActivePlan returns the user's active plan, or nil when there is none.
func (s *planService) GetActivePlan(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	return activePlanOf(ctx, s.planRepo, ownerID)
}

// DeletePlan removes the plan and all of its trainings.
func (s *planService) DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error {
	if _, err := loadOwnedPlan(ctx, s.planRepo, ownerID, planID); err != nil {
		return err
	}
	deleted, err := s.trainingRepo.DeleteByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	log.Printf("INFO: Deleted plan %s and %d trainings", planID.Hex(), deleted)
	return nil
}

// loadOwnedPlan fetches a plan and checks that ownerID owns it.
func loadOwnedPlan(ctx context.Context, planRepo repository.WorkoutPlanRepository, ownerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.Owns(ownerID) {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

func activePlanOf(ctx context.Context, planRepo repository.WorkoutPlanRepository, ownerID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := planRepo.GetActiveByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}
