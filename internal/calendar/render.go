package calendar

import (
	"context"
	"time"

	"alcyxob/run-schedule/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category classifies a grid cell.
type Category string

const (
	CategoryOutside   Category = "outside"
	CategoryPlanStart Category = "plan_start"
	CategoryPlanEnd   Category = "plan_end"
	CategoryTraining  Category = "training"
	CategoryPlain     Category = "plain"
)

// LinkBuilder turns cell actions into navigation targets. The API layer
// supplies the implementation so the calendar knows nothing about routes.
type LinkBuilder interface {
	// AddTraining points at the "create training on date" action.
	AddTraining(planID primitive.ObjectID, date time.Time, ordinal int) string
	// EditTraining points at the "edit this training" action.
	EditTraining(planID, trainingID primitive.ObjectID, ordinal int) string
}

// Cell is one rendered grid position.
type Cell struct {
	Day     int          `json:"day"`
	Weekday time.Weekday `json:"weekday"`
	// Category is the highest priority kind of the day: plan_start, plan_end,
	// training, plain. A boundary day keeps its training data below.
	Category     Category            `json:"category"`
	IsToday      bool                `json:"isToday"`
	HasTraining  bool                `json:"hasTraining"`
	TrainingID   *primitive.ObjectID `json:"trainingId,omitempty"`
	Summary      *string             `json:"summary,omitempty"`
	Accomplished bool                `json:"accomplished"`
	Target       string              `json:"target,omitempty"`
}

// MonthView is a fully rendered month of a plan.
type MonthView struct {
	PlanID    primitive.ObjectID `json:"planId"`
	YearMonth YearMonth          `json:"yearMonth"`
	Ordinal   int                `json:"ordinal"`
	Weeks     [][7]Cell          `json:"weeks"`
}

// Renderer overlays a plan's trainings on month grids.
type Renderer struct {
	finder TrainingFinder
	links  LinkBuilder
}

// NewRenderer creates a Renderer.
func NewRenderer(finder TrainingFinder, links LinkBuilder) *Renderer {
	return &Renderer{finder: finder, links: links}
}

// Render builds the calendar of plan for ym. today only drives the IsToday
// marker. A nil plan renders nothing and is not an error.
func (r *Renderer) Render(ctx context.Context, plan *domain.WorkoutPlan, ym YearMonth, today time.Time) (*MonthView, error) {
	if plan == nil {
		return nil, nil
	}
	grid, err := MonthGrid(ym)
	if err != nil {
		return nil, err
	}
	ordinal, err := OrdinalFor(plan.StartDate, ym)
	if err != nil {
		return nil, err
	}
	index, err := BuildDayIndex(ctx, r.finder, plan, ym)
	if err != nil {
		return nil, err
	}

	view := &MonthView{
		PlanID:    plan.ID,
		YearMonth: ym,
		Ordinal:   ordinal,
		Weeks:     make([][7]Cell, len(grid)),
	}
	for w, week := range grid {
		for col, gd := range week {
			view.Weeks[w][col] = r.cell(plan, ym, ordinal, gd, index, today)
		}
	}
	return view, nil
}

func (r *Renderer) cell(plan *domain.WorkoutPlan, ym YearMonth, ordinal int, gd GridDay, index DayIndex, today time.Time) Cell {
	c := Cell{Day: gd.Day, Weekday: gd.Weekday, Category: CategoryOutside}
	if gd.Day == 0 {
		return c
	}

	date := time.Date(ym.Year, ym.Month, gd.Day, 0, 0, 0, 0, time.UTC)
	entry, hasTraining := index[gd.Day]
	c.Category = categorize(plan, date, hasTraining)
	c.IsToday = domain.SameDay(date, today)

	if hasTraining {
		id := entry.TrainingID
		summary := entry.Summary
		c.HasTraining = true
		c.TrainingID = &id
		c.Summary = &summary
		c.Accomplished = entry.Accomplished
		c.Target = r.links.EditTraining(plan.ID, id, ordinal)
		return c
	}
	c.Target = r.links.AddTraining(plan.ID, date, ordinal)
	return c
}

// categorize applies the priority plan_start > plan_end > training > plain.
func categorize(plan *domain.WorkoutPlan, date time.Time, hasTraining bool) Category {
	switch {
	case domain.SameDay(date, plan.StartDate):
		return CategoryPlanStart
	case domain.SameDay(date, plan.EndDate):
		return CategoryPlanEnd
	case hasTraining:
		return CategoryTraining
	default:
		return CategoryPlain
	}
}

// Cell returns the cell for day of month, or false if the day is not on the grid.
func (v *MonthView) Cell(day int) (Cell, bool) {
	if day < 1 {
		return Cell{}, false
	}
	for _, week := range v.Weeks {
		for _, c := range week {
			if c.Day == day {
				return c, true
			}
		}
	}
	return Cell{}, false
}
