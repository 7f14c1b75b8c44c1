package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-yearprogress/internal/config"
)

// ValidationError reports a date string that is malformed or names a day
// that does not exist in its month.
type ValidationError struct {
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrInvalidDate, e.Value)
}

// CalendarDate is a local calendar day without time or zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// At returns the instant of this date at the given wall clock time in loc.
func (d CalendarDate) At(hour, min, sec int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, min, sec, 0, loc)
}

// DateOf extracts the calendar date of t in its own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// YearProgress describes how far through its year a date falls.
type YearProgress struct {
	Date          CalendarDate
	DayOfYear     int
	TotalDays     int
	PercentPassed float64
	DegreesPassed float64
	IsLeapYear    bool
}

// IsLeapYear reports whether February has a 29th day in year.
// time.Date normalizes Feb 29 of a common year to March 1st.
func IsLeapYear(year int) bool {
	return time.Date(year, time.February, 29, 0, 0, 0, 0, time.UTC).Month() == time.February
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year int, month time.Month) int {
	return monthTable(IsLeapYear(year))[month-1]
}

func monthTable(leap bool) [12]int {
	feb := 28
	if leap {
		feb = 29
	}
	return [12]int{31, feb, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
}

// ParseCalendarDate parses a strict YYYY-MM-DD string and rejects days
// beyond the end of their month (e.g. 2023-02-30).
func ParseCalendarDate(value string) (CalendarDate, error) {
	parts := strings.Split(value, config.DateSeparator)
	if len(parts) != 3 ||
		len(parts[0]) != config.DateYearDigits ||
		len(parts[1]) != config.DateMonthDigits ||
		len(parts[2]) != config.DateDayDigits {
		return CalendarDate{}, &ValidationError{Value: value}
	}

	var nums [3]int
	for i, p := range parts {
		if !allDigits(p) {
			return CalendarDate{}, &ValidationError{Value: value}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return CalendarDate{}, &ValidationError{Value: value}
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 {
		return CalendarDate{}, &ValidationError{Value: value}
	}
	if day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return CalendarDate{}, &ValidationError{Value: value}
	}

	return CalendarDate{Year: year, Month: time.Month(month), Day: day}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ComputeYearProgress returns the day of year and the share of the year
// elapsed at the end of the given date.
func ComputeYearProgress(value string) (YearProgress, error) {
	date, err := ParseCalendarDate(value)
	if err != nil {
		return YearProgress{}, err
	}
	return ProgressOf(date), nil
}

// ProgressOf computes the year progress of an already validated date.
func ProgressOf(date CalendarDate) YearProgress {
	leap := IsLeapYear(date.Year)
	table := monthTable(leap)

	dayOfYear := 0
	for i := 0; i < int(date.Month)-1; i++ {
		dayOfYear += table[i]
	}
	dayOfYear += date.Day

	totalDays := config.DaysInCommonYear
	if leap {
		totalDays = config.DaysInLeapYear
	}

	percent := float64(dayOfYear) / float64(totalDays) * config.PercentScale
	return YearProgress{
		Date:          date,
		DayOfYear:     dayOfYear,
		TotalDays:     totalDays,
		PercentPassed: percent,
		DegreesPassed: percent / config.PercentScale * config.FullCircleDeg,
		IsLeapYear:    leap,
	}
}
