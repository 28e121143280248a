// Package calendar projects a workout plan onto month calendars.
//
// Months inside a plan are numbered with ordinals: the calendar month holding
// the plan start date is ordinal 1, the month after it 2, and so on. Every
// function here is a pure function of its arguments; the only I/O is the
// training lookup done through TrainingFinder.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// FirstOrdinal is the ordinal of the plan's first calendar month.
const FirstOrdinal = 1

// ErrInvalidMonth is returned when a month outside 1..12 reaches the date math.
var ErrInvalidMonth = errors.New("calendar: month must be between 1 and 12")

// YearMonth is one calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Validate fails fast on months time.Date would silently normalise.
func (ym YearMonth) Validate() error {
	if ym.Month < time.January || ym.Month > time.December {
		return fmt.Errorf("%w: got %d", ErrInvalidMonth, ym.Month)
	}
	return nil
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Prev returns the preceding calendar month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// FirstDay is the 1st of the month, UTC midnight.
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is the last day of the month, UTC midnight.
func (ym YearMonth) LastDay() time.Time {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month.
func (ym YearMonth) DaysIn() int {
	return ym.LastDay().Day()
}

// Contains reports whether t falls inside the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// OrdinalFor returns the plan month ordinal of ym for a plan starting on planStart.
// Months before the plan get ordinals below FirstOrdinal; they are valid
// results and callers decide whether to show them.
func OrdinalFor(planStart time.Time, ym YearMonth) (int, error) {
	if err := ym.Validate(); err != nil {
		return 0, err
	}
	return (ym.Year-planStart.Year())*12 + int(ym.Month-planStart.Month()) + FirstOrdinal, nil
}

// YearMonthFor is the inverse of OrdinalFor.
func YearMonthFor(planStart time.Time, ordinal int) YearMonth {
	total := int(planStart.Month()) - 1 + (ordinal - FirstOrdinal)
	years, month := floorDivMod(total, 12)
	return YearMonth{Year: planStart.Year() + years, Month: time.Month(month + 1)}
}

// floorDivMod divides rounding toward negative infinity so that month
// indexes before the plan start land in the previous years, never on month 0.
func floorDivMod(a, b int) (int, int) {
	q, r := a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
