package calendar

import (
	"time"
)

// GridDay is one position of a month grid. Day is 0 for positions that
// belong to the neighbouring months.
type GridDay struct {
	Day     int
	Weekday time.Weekday
}

// Week is one grid row, Monday first.
type Week [7]GridDay

// weekdayColumns maps a grid column to its weekday.
var weekdayColumns = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// column returns the Monday-first column index of wd.
func column(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// MonthGrid lays out ym as full weeks starting on Monday. Leading and trailing
// positions outside the month have Day 0. The grid has 4 to 6 weeks.
func MonthGrid(ym YearMonth) ([]Week, error) {
	if err := ym.Validate(); err != nil {
		return nil, err
	}

	gap := column(ym.FirstDay().Weekday())
	days := ym.DaysIn()
	cells := gap + days
	weeks := make([]Week, (cells+6)/7)

	for pos := 0; pos < len(weeks)*7; pos++ {
		w, col := pos/7, pos%7
		day := pos - gap + 1
		if day < 1 || day > days {
			day = 0
		}
		weeks[w][col] = GridDay{Day: day, Weekday: weekdayColumns[col]}
	}
	return weeks, nil
}
