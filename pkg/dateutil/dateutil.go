package dateutil

import (
	"fmt"
	"time"
)

// Age calculates the whole years elapsed from birthDate to atDate
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing d
func MonthStart(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), 1)
}

// FirstOfNextMonth returns the first day of the month after d
func FirstOfNextMonth(d time.Time) time.Time {
	if d.Month() == time.December {
		return Date(d.Year()+1, time.January, 1)
	}
	return Date(d.Year(), d.Month()+1, 1)
}

// MonthIndex maps a date onto a monotonically increasing month counter.
func MonthIndex(d time.Time) int {
	return d.Year()*12 + int(d.Month()) - 1
}

// MonthFromIndex is the inverse of MonthIndex.
func MonthFromIndex(idx int) time.Time {
	return Date(idx/12, time.Month(idx%12+1), 1)
}

// BirthdayMonth returns the first of the month in which the person reaches age.
func BirthdayMonth(birthDate time.Time, age int) time.Time {
	return Date(birthDate.Year()+age, birthDate.Month(), 1)
}

// AgeYearsMonths returns the age at d in whole years and remaining months,
// ignoring the day of month.
func AgeYearsMonths(birthDate, d time.Time) (int, int) {
	years := d.Year() - birthDate.Year()
	months := int(d.Month()) - int(birthDate.Month())
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}

// FormatAgeYM renders an age as "62y 5m".
func FormatAgeYM(birthDate, d time.Time) string {
	y, m := AgeYearsMonths(birthDate, d)
	return fmt.Sprintf("%dy %dm", y, m)
}

// EndOfYear returns December 31 of the given year
func EndOfYear(year int) time.Time {
	return Date(year, time.December, 31)
}

// BeginningOfYear returns January 1 of the given year
func BeginningOfYear(year int) time.Time {
	return Date(year, time.January, 1)
}
