package calendar

import (
	"alcyxob/run-schedule/internal/domain"
)

// Navigation lists the neighbouring months a calendar can move to.
type Navigation struct {
	Previous *YearMonth `json:"previous,omitempty"`
	Next     *YearMonth `json:"next,omitempty"`
}

// Previous returns the month before ym if the plan had started by its last day.
func Previous(plan *domain.WorkoutPlan, ym YearMonth) (YearMonth, bool, error) {
	if err := ym.Validate(); err != nil {
		return YearMonth{}, false, err
	}
	prev := ym.Prev()
	if domain.CivilDate(plan.StartDate).After(prev.LastDay()) {
		return YearMonth{}, false, nil
	}
	return prev, true, nil
}

// Next returns the month after ym if the plan is still running on its first day.
func Next(plan *domain.WorkoutPlan, ym YearMonth) (YearMonth, bool, error) {
	if err := ym.Validate(); err != nil {
		return YearMonth{}, false, err
	}
	next := ym.Next()
	if domain.CivilDate(plan.EndDate).Before(next.FirstDay()) {
		return YearMonth{}, false, nil
	}
	return next, true, nil
}

// Navigate combines Previous and Next. A nil plan has nowhere to go.
func Navigate(plan *domain.WorkoutPlan, ym YearMonth) (Navigation, error) {
	var nav Navigation
	if err := ym.Validate(); err != nil {
		return nav, err
	}
	if plan == nil {
		return nav, nil
	}
	if prev, ok, _ := Previous(plan, ym); ok {
		nav.Previous = &prev
	}
	if next, ok, _ := Next(plan, ym); ok {
		nav.Next = &next
	}
	return nav, nil
}
