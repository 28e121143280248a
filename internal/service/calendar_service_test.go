package service

import (
	"alcyxob/run-schedule/internal/calendar"
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCalendarService_CurrentMonth(t *testing.T) {
	ctx := context.Background()
	userID, planID, trainingID := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	plan := &domain.WorkoutPlan{ID: planID, OwnerID: userID, StartDate: date(2020, time.June, 1), EndDate: date(2020, time.August, 15), IsActive: true}

	t.Run("Today inside the plan", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2020, time.July).Return([]domain.Training{
			{ID: trainingID, WorkoutPlanID: planID, Day: date(2020, time.July, 3), TrainingMain: "OWB", DistanceMain: floatPtr(10)},
		}, nil).Once()

		month, err := svc.CurrentMonth(ctx, userID, date(2020, time.July, 10))
		require.NoError(t, err)
		require.NotNil(t, month)
		assert.Equal(t, calendar.YearMonth{Year: 2020, Month: time.July}, month.View.YearMonth)
		assert.Equal(t, 2, month.View.Ordinal)
		assert.Equal(t, calendar.Bounds{First: 1, Last: 3, Current: 2}, month.Bounds)
		require.NotNil(t, month.PrevOrdinal)
		require.NotNil(t, month.NextOrdinal)
		assert.Equal(t, 1, *month.PrevOrdinal)
		assert.Equal(t, 3, *month.NextOrdinal)

		cell, ok := month.View.Cell(3)
		require.True(t, ok)
		assert.Equal(t, calendar.CategoryTraining, cell.Category)
		assert.Equal(t, "OWB 10.0km", *cell.Summary)
		assert.Equal(t, "edit/"+trainingID.Hex()+"/2", cell.Target)

		cell, ok = month.View.Cell(10)
		require.True(t, ok)
		assert.True(t, cell.IsToday)
		assert.Equal(t, "add/2020-07-10/2", cell.Target)
		trainings.AssertExpectations(t)
	})

	t.Run("Today before the plan opens the first month", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2020, time.June).Return([]domain.Training{}, nil).Once()

		month, err := svc.CurrentMonth(ctx, userID, date(2020, time.March, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, month.View.Ordinal)
		assert.Equal(t, -2, month.Bounds.Current)
		assert.Nil(t, month.PrevOrdinal)
		assert.Nil(t, month.Navigation.Previous)
	})

	t.Run("Today after the plan opens the last month", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2020, time.August).Return([]domain.Training{}, nil).Once()

		month, err := svc.CurrentMonth(ctx, userID, date(2021, time.January, 5))
		require.NoError(t, err)
		assert.Equal(t, 3, month.View.Ordinal)
		assert.Nil(t, month.NextOrdinal)
		cell, _ := month.View.Cell(15)
		assert.Equal(t, calendar.CategoryPlanEnd, cell.Category)
	})

	t.Run("No active plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		month, err := svc.CurrentMonth(ctx, userID, date(2020, time.July, 10))
		require.NoError(t, err)
		assert.Nil(t, month)
	})

	t.Run("Duplicate trainings surface as ambiguous", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2020, time.July).Return([]domain.Training{
			{ID: primitive.NewObjectID(), Day: date(2020, time.July, 3), TrainingMain: "A"},
			{ID: primitive.NewObjectID(), Day: date(2020, time.July, 3), TrainingMain: "B"},
		}, nil).Once()

		_, err := svc.CurrentMonth(ctx, userID, date(2020, time.July, 10))
		assert.ErrorIs(t, err, ErrAmbiguousTrainingDay)
	})
}

func TestCalendarService_MonthForOrdinal(t *testing.T) {
	ctx := context.Background()
	userID, planID := primitive.NewObjectID(), primitive.NewObjectID()
	plan := &domain.WorkoutPlan{ID: planID, OwnerID: userID, StartDate: date(2020, time.November, 10), EndDate: date(2021, time.February, 15), IsActive: true}

	t.Run("Across the year boundary", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2021, time.January).Return([]domain.Training{}, nil).Once()

		month, err := svc.MonthForOrdinal(ctx, userID, 3, date(2020, time.December, 1))
		require.NoError(t, err)
		assert.Equal(t, calendar.YearMonth{Year: 2021, Month: time.January}, month.View.YearMonth)
		require.NotNil(t, month.Navigation.Previous)
		assert.Equal(t, calendar.YearMonth{Year: 2020, Month: time.December}, *month.Navigation.Previous)
	})

	t.Run("Ordinal past the plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()

		_, err := svc.MonthForOrdinal(ctx, userID, 5, date(2020, time.December, 1))
		assert.ErrorIs(t, err, ErrMonthOutsidePlan)
	})

	t.Run("Ordinal before the plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()

		_, err := svc.MonthForOrdinal(ctx, userID, 0, date(2020, time.December, 1))
		assert.ErrorIs(t, err, ErrMonthOutsidePlan)
	})
}

func TestCalendarService_MonthForYearMonth(t *testing.T) {
	ctx := context.Background()
	userID, planID := primitive.NewObjectID(), primitive.NewObjectID()
	plan := &domain.WorkoutPlan{ID: planID, OwnerID: userID, StartDate: date(2020, time.January, 5), EndDate: date(2020, time.January, 20)}

	t.Run("One-month plan has nowhere to go", func(t *testing.T) {
		plans, trainings := new(MockWorkoutPlanRepository), new(MockTrainingRepository)
		svc := NewCalendarService(plans, trainings, stubLinks{})
		plans.On("GetByID", ctx, planID).Return(plan, nil).Once()
		trainings.On("FindByPlanAndMonth", ctx, planID, 2020, time.January).Return([]domain.Training{}, nil).Once()

		month, err := svc.MonthForYearMonth(ctx, userID, planID, calendar.YearMonth{Year: 2020, Month: time.January}, date(2020, time.January, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, month.View.Ordinal)
		assert.Nil(t, month.Navigation.Previous)
		assert.Nil(t, month.Navigation.Next)
		start, _ := month.View.Cell(5)
		assert.Equal(t, calendar.CategoryPlanStart, start.Category)
	})

	t.Run("Invalid month", func(t *testing.T) {
		svc := NewCalendarService(new(MockWorkoutPlanRepository), new(MockTrainingRepository), stubLinks{})
		_, err := svc.MonthForYearMonth(ctx, userID, planID, calendar.YearMonth{Year: 2020, Month: 13}, date(2020, time.January, 1))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Month outside the plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetByID", ctx, planID).Return(plan, nil).Once()

		_, err := svc.MonthForYearMonth(ctx, userID, planID, calendar.YearMonth{Year: 2020, Month: time.March}, date(2020, time.January, 1))
		assert.ErrorIs(t, err, ErrMonthOutsidePlan)
	})

	t.Run("Plan of another user", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetByID", ctx, planID).Return(plan, nil).Once()

		_, err := svc.MonthForYearMonth(ctx, primitive.NewObjectID(), planID, calendar.YearMonth{Year: 2020, Month: time.January}, date(2020, time.January, 1))
		assert.ErrorIs(t, err, ErrPlanAccessDenied)
	})
}

func TestCalendarService_BoundsAndCounter(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	plan := &domain.WorkoutPlan{ID: primitive.NewObjectID(), OwnerID: userID, StartDate: date(2020, time.June, 1), EndDate: date(2020, time.August, 15)}

	t.Run("Counter without a plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		n, err := svc.MonthCounter(ctx, userID, date(2020, time.July, 1))
		require.NoError(t, err)
		assert.Equal(t, calendar.FirstOrdinal, n)
	})

	t.Run("Counter inside the plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()

		n, err := svc.MonthCounter(ctx, userID, date(2020, time.August, 1))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Counter after the plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()

		n, err := svc.MonthCounter(ctx, userID, date(2020, time.December, 24))
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("Bounds keep an unclamped current", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(plan, nil).Once()

		b, err := svc.Bounds(ctx, userID, date(2020, time.December, 24))
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, calendar.Bounds{First: 1, Last: 3, Current: 7}, *b)
		assert.False(t, b.CurrentInPlan())
	})

	t.Run("Bounds without a plan", func(t *testing.T) {
		plans := new(MockWorkoutPlanRepository)
		svc := NewCalendarService(plans, new(MockTrainingRepository), stubLinks{})
		plans.On("GetActiveByOwnerID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		b, err := svc.Bounds(ctx, userID, date(2020, time.July, 1))
		require.NoError(t, err)
		assert.Nil(t, b)
	})

}
