package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrAmbiguousTrainingDay means storage returned more than one training for a
// single plan day. It is a data consistency problem and is never resolved here.
var ErrAmbiguousTrainingDay = errors.New("calendar: more than one training on the same plan day")

// TrainingFinder is the read side of training storage the calendar needs.
type TrainingFinder interface {
	// FindByPlanAndMonth returns the plan's trainings whose day lies in the given month.
	FindByPlanAndMonth(ctx context.Context, planID primitive.ObjectID, year int, month time.Month) ([]domain.Training, error)
	// FindByPlanAndDay returns the plan's training on day, repository.ErrNotFound
	// when there is none and repository.ErrAmbiguous when there are several.
	FindByPlanAndDay(ctx context.Context, planID primitive.ObjectID, day time.Time) (*domain.Training, error)
}

// DayEntry is what the calendar shows for a training day.
type DayEntry struct {
	TrainingID   primitive.ObjectID
	Summary      string
	Accomplished bool
}

// DayIndex maps day of month (1..31) to the training on that day.
type DayIndex map[int]DayEntry

// BuildDayIndex loads the plan's trainings for ym and indexes them by day of month.
// A nil plan has no trainings and gives an empty index.
func BuildDayIndex(ctx context.Context, finder TrainingFinder, plan *domain.WorkoutPlan, ym YearMonth) (DayIndex, error) {
	if err := ym.Validate(); err != nil {
		return nil, err
	}
	if plan == nil {
		return DayIndex{}, nil
	}
	trainings, err := finder.FindByPlanAndMonth(ctx, plan.ID, ym.Year, ym.Month)
	if err != nil {
		return nil, fmt.Errorf("load trainings for %s: %w", ym, err)
	}

	index := make(DayIndex, len(trainings))
	for i := range trainings {
		t := &trainings[i]
		if !ym.Contains(t.Day) {
			continue
		}
		day := t.Day.Day()
		if existing, ok := index[day]; ok {
			return nil, fmt.Errorf("%w: %s has trainings %s and %s",
				ErrAmbiguousTrainingDay, t.Day.Format(domain.DateLayout), existing.TrainingID.Hex(), t.ID.Hex())
		}
		index[day] = DayEntry{
			TrainingID:   t.ID,
			Summary:      t.Info(),
			Accomplished: t.Accomplished,
		}
	}
	return index, nil
}

// TrainingOnDay resolves the training a calendar cell links to. A nil plan or
// an empty day gives nil without error.
func TrainingOnDay(ctx context.Context, finder TrainingFinder, plan *domain.WorkoutPlan, day time.Time) (*domain.Training, error) {
	if plan == nil {
		return nil, nil
	}
	day = domain.CivilDate(day)
	t, err := finder.FindByPlanAndDay(ctx, plan.ID, day)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case errors.Is(err, repository.ErrAmbiguous):
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousTrainingDay, day.Format(domain.DateLayout))
	case err != nil:
		return nil, fmt.Errorf("load training for %s: %w", day.Format(domain.DateLayout), err)
	}
	return t, nil
}

// Summaries returns the day -> summary view of the index.
func (idx DayIndex) Summaries() map[int]string {
	out := make(map[int]string, len(idx))
	for day, e := range idx {
		out[day] = e.Summary
	}
	return out
}
