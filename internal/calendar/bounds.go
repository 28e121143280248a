package calendar

import (
	"time"

	"alcyxob/run-schedule/internal/domain"
)

// Bounds holds the navigable ordinal range of a plan and where today falls.
// Current is informational only and may lie outside [First, Last].
type Bounds struct {
	First   int `json:"first"`
	Last    int `json:"last"`
	Current int `json:"current"`
}

// FirstOrdinalOf returns the ordinal of the plan's first month.
func FirstOrdinalOf(_ *domain.WorkoutPlan) int {
	return FirstOrdinal
}

// LastOrdinalOf returns the ordinal of the month holding the plan end date.
func LastOrdinalOf(plan *domain.WorkoutPlan) int {
	return ordinalOfDate(plan.StartDate, plan.EndDate)
}

// CurrentOrdinalOf returns the ordinal of today's month. It is not clamped.
func CurrentOrdinalOf(plan *domain.WorkoutPlan, today time.Time) int {
	return ordinalOfDate(plan.StartDate, today)
}

// PlanBounds computes the bounds of plan. A nil plan yields nil.
func PlanBounds(plan *domain.WorkoutPlan, today time.Time) *Bounds {
	if plan == nil {
		return nil
	}
	return &Bounds{
		First:   FirstOrdinalOf(plan),
		Last:    LastOrdinalOf(plan),
		Current: CurrentOrdinalOf(plan, today),
	}
}

// Contains reports whether ordinal names a month of the plan.
func (b Bounds) Contains(ordinal int) bool {
	return ordinal >= b.First && ordinal <= b.Last
}

// CurrentInPlan reports whether today falls inside the plan months.
func (b Bounds) CurrentInPlan() bool {
	return b.Contains(b.Current)
}

// Clamp pulls ordinal into [First, Last].
func (b Bounds) Clamp(ordinal int) int {
	if ordinal < b.First {
		return b.First
	}
	if ordinal > b.Last {
		return b.Last
	}
	return ordinal
}

// ordinalOfDate cannot fail: the month of a real date is always valid.
func ordinalOfDate(planStart, t time.Time) int {
	ordinal, _ := OrdinalFor(planStart, YearMonthOf(t))
	return ordinal
}
