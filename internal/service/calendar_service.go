package service

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMonthOutsidePlan = errors.New("month is outside the plan")
)

// CalendarMonth is one rendered plan month plus what the page needs to move around.
type CalendarMonth struct {
	Plan        *domain.WorkoutPlan `json:"plan"`
	View        *calendar.MonthView `json:"view"`
	Bounds      calendar.Bounds     `json:"bounds"`
	Navigation  calendar.Navigation `json:"navigation"`
	PrevOrdinal *int                `json:"prevOrdinal,omitempty"`
	NextOrdinal *int                `json:"nextOrdinal,omitempty"`
}

// CalendarService renders plan months. Methods without a plan ID work on the
// user's active plan and return nil results when there is none.
type CalendarService interface {
	MonthForOrdinal(ctx context.Context, userID primitive.ObjectID, ordinal int, today time.Time) (*CalendarMonth, error)
	MonthForYearMonth(ctx context.Context, userID, planID primitive.ObjectID, ym calendar.YearMonth, today time.Time) (*CalendarMonth, error)
	CurrentMonth(ctx context.Context, userID primitive.ObjectID, today time.Time) (*CalendarMonth, error)
	Bounds(ctx context.Context, userID primitive.ObjectID, today time.Time) (*calendar.Bounds, error)
	MonthCounter(ctx context.Context, userID primitive.ObjectID, today time.Time) (int, error)
}

type calendarService struct {
	planRepo repository.WorkoutPlanRepository
	renderer *calendar.Renderer
}

// NewCalendarService wires the renderer to the training store and the given link builder.
func NewCalendarService(planRepo repository.WorkoutPlanRepository, trainingRepo repository.TrainingRepository, links calendar.LinkBuilder) CalendarService {
	return &calendarService{
		planRepo: planRepo,
		renderer: calendar.NewRenderer(trainingRepo, links),
	}
}

// MonthForOrdinal renders the ordinal-th month of the active plan.
func (s *calendarService) MonthForOrdinal(ctx context.Context, userID primitive.ObjectID, ordinal int, today time.Time) (*CalendarMonth, error) {
	plan, err := activePlanOf(ctx, s.planRepo, userID)
	if err != nil || plan == nil {
		return nil, err
	}
	if !calendar.PlanBounds(plan, today).Contains(ordinal) {
		return nil, fmt.Errorf("month %d: %w", ordinal, ErrMonthOutsidePlan)
	}
	return s.month(ctx, plan, calendar.YearMonthFor(plan.StartDate, ordinal), today)
}

// MonthForYearMonth renders a calendar month of any plan the user owns.
func (s *calendarService) MonthForYearMonth(ctx context.Context, userID, planID primitive.ObjectID, ym calendar.YearMonth, today time.Time) (*CalendarMonth, error) {
	if err := ym.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	plan, err := loadOwnedPlan(ctx, s.planRepo, userID, planID)
	if err != nil {
		return nil, err
	}
	ordinal, err := calendar.OrdinalFor(plan.StartDate, ym)
	if err != nil {
		return nil, err
	}
	if !calendar.PlanBounds(plan, today).Contains(ordinal) {
		return nil, fmt.Errorf("%s: %w", ym, ErrMonthOutsidePlan)
	}
	return s.month(ctx, plan, ym, today)
}

// CurrentMonth renders the active plan at today's month, pulled into the plan
// when today lies before its start or after its end.
func (s *calendarService) CurrentMonth(ctx context.Context, userID primitive.ObjectID, today time.Time) (*CalendarMonth, error) {
	plan, err := activePlanOf(ctx, s.planRepo, userID)
	if err != nil || plan == nil {
		return nil, err
	}
	bounds := calendar.PlanBounds(plan, today)
	ordinal := bounds.Clamp(bounds.Current)
	return s.month(ctx, plan, calendar.YearMonthFor(plan.StartDate, ordinal), today)
}

// Bounds returns the ordinal range of the active plan, nil without one.
func (s *calendarService) Bounds(ctx context.Context, userID primitive.ObjectID, today time.Time) (*calendar.Bounds, error) {
	plan, err := activePlanOf(ctx, s.planRepo, userID)
	if err != nil {
		return nil, err
	}
	return calendar.PlanBounds(plan, today), nil
}

// MonthCounter is today's ordinal in the active plan, not clamped to the plan.
// Without an active plan it is the first ordinal.
func (s *calendarService) MonthCounter(ctx context.Context, userID primitive.ObjectID, today time.Time) (int, error) {
	bounds, err := s.Bounds(ctx, userID, today)
	if err != nil {
		return 0, err
	}
	if bounds == nil {
		return calendar.FirstOrdinal, nil
	}
	return bounds.Current, nil
}

func (s *calendarService) month(ctx context.Context, plan *domain.WorkoutPlan, ym calendar.YearMonth, today time.Time) (*CalendarMonth, error) {
	view, err := s.renderer.Render(ctx, plan, ym, today)
	if err != nil {
		return nil, err
	}
	nav, err := calendar.Navigate(plan, ym)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	result := &CalendarMonth{
		Plan:       plan,
		View:       view,
		Bounds:     *calendar.PlanBounds(plan, today),
		Navigation: nav,
	}
	if result.Navigation.Previous != nil {
		prev := view.Ordinal - 1
		result.PrevOrdinal = &prev
	}
	if result.Navigation.Next != nil {
		next := view.Ordinal + 1
		result.NextOrdinal = &next
	}
	return result, nil
}
