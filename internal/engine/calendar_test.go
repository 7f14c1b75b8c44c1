package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeYearProgress verifies day-of-year and percentages on the
// boundaries of common and leap years.
func TestComputeYearProgress(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDay     int
		wantTotal   int
		wantPercent float64
		wantLeap    bool
	}{
		{
			name:        "First day of leap year",
			input:       "2024-01-01",
			wantDay:     1,
			wantTotal:   366,
			wantPercent: 0.273224,
			wantLeap:    true,
		},
		{
			name:        "Last day of common year",
			input:       "2023-12-31",
			wantDay:     365,
			wantTotal:   365,
			wantPercent: 100,
			wantLeap:    false,
		},
		{
			name:        "Leap day",
			input:       "2024-02-29",
			wantDay:     60,
			wantTotal:   366,
			wantPercent: 60.0 / 366 * 100,
			wantLeap:    true,
		},
		{
			name:        "March 1st after leap day",
			input:       "2024-03-01",
			wantDay:     61,
			wantTotal:   366,
			wantPercent: 61.0 / 366 * 100,
			wantLeap:    true,
		},
		{
			name:        "March 1st in common year",
			input:       "2023-03-01",
			wantDay:     60,
			wantTotal:   365,
			wantPercent: 60.0 / 365 * 100,
			wantLeap:    false,
		},
		{
			name:        "Century year is not leap",
			input:       "1900-12-31",
			wantDay:     365,
			wantTotal:   365,
			wantPercent: 100,
			wantLeap:    false,
		},
		{
			name:        "Quadricentennial year is leap",
			input:       "2000-12-31",
			wantDay:     366,
			wantTotal:   366,
			wantPercent: 100,
			wantLeap:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ComputeYearProgress(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDay, p.DayOfYear)
			assert.Equal(t, tt.wantTotal, p.TotalDays)
			assert.Equal(t, tt.wantLeap, p.IsLeapYear)
			assert.InDelta(t, tt.wantPercent, p.PercentPassed, 1e-6)
			assert.InDelta(t, p.PercentPassed/100*360, p.DegreesPassed, 1e-9)
		})
	}
}

// TestComputeYearProgress_EveryDay walks whole years and checks the
// denominator and the output bounds for each day.
func TestComputeYearProgress_EveryDay(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		total := 365
		if IsLeapYear(year) {
			total = 366
		}

		day := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)
		for i := 1; day.Year() == year; i++ {
			p, err := ComputeYearProgress(day.Format("2006-01-02"))
			require.NoError(t, err, day.Format("2006-01-02"))

			assert.Equal(t, i, p.DayOfYear)
			assert.Equal(t, day.YearDay(), p.DayOfYear, "must agree with time.YearDay")
			assert.InDelta(t, float64(i)/float64(total)*100, p.PercentPassed, 1e-6)
			assert.Greater(t, p.PercentPassed, 0.0)
			assert.LessOrEqual(t, p.PercentPassed, 100.0)
			assert.Greater(t, p.DegreesPassed, 0.0)
			assert.LessOrEqual(t, p.DegreesPassed, 360.0)

			day = day.AddDate(0, 0, 1)
		}
	}
}

func TestComputeYearProgress_Invalid(t *testing.T) {
	inputs := []string{
		"2023-02-30",
		"2023-02-29",
		"2024-04-31",
		"2024-13-01",
		"2024-00-10",
		"2024-01-00",
		"not-a-date",
		"",
		"2024-1-01",
		"24-01-01",
		"2024/01/01",
		"2024-01-01T00:00:00",
		"+024-01-01",
		"2024-0a-01",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ComputeYearProgress(in)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "must be a ValidationError")
			assert.Equal(t, in, vErr.Value)
			assert.Contains(t, err.Error(), "invalid date")
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.True(t, IsLeapYear(0))
	assert.False(t, IsLeapYear(2023))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2100))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2023, time.April))
	assert.Equal(t, 31, DaysInMonth(2023, time.December))
}

func TestCalendarDate_String(t *testing.T) {
	d, err := ParseCalendarDate("0987-06-05")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate{Year: 987, Month: time.June, Day: 5}, d)
	assert.Equal(t, "0987-06-05", d.String())

	assert.Equal(t, "2026-10-19", DateOf(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)).String())
}
