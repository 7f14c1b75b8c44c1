package engine

import (
	"time"

	"github.com/tartampluch/go-yearprogress/internal/config"
)

// CountdownResult is the distance from a date's last second to the last
// second of its year.
type CountdownResult struct {
	Date                 CalendarDate
	DaysRemaining        int
	PercentOfYearElapsed float64
}

// ComputeCountdown measures the selected date at 23:59:59 local time against
// the year boundaries Jan 1 00:00:00 and Dec 31 23:59:59 of the same year.
// A nil loc means time.Local.
func ComputeCountdown(value string, loc *time.Location) (CountdownResult, error) {
	date, err := ParseCalendarDate(value)
	if err != nil {
		return CountdownResult{}, err
	}
	return CountdownOf(date, loc), nil
}

// CountdownOf computes the countdown of an already validated date.
func CountdownOf(date CalendarDate, loc *time.Location) CountdownResult {
	if loc == nil {
		loc = time.Local
	}

	selected := date.At(23, 59, 59, loc)
	yearEnd := time.Date(date.Year, time.December, 31, 23, 59, 59, 0, loc)
	yearStart := time.Date(date.Year, time.January, 1, 0, 0, 0, 0, loc)

	// selected never lies after yearEnd, so the integer division floors.
	remaining := yearEnd.Sub(selected).Milliseconds() / config.MillisPerDay

	total := yearEnd.Sub(yearStart).Milliseconds()
	elapsed := selected.Sub(yearStart).Milliseconds()

	return CountdownResult{
		Date:                 date,
		DaysRemaining:        int(remaining),
		PercentOfYearElapsed: float64(elapsed) / float64(total) * config.PercentScale,
	}
}
