package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{"Same month and day", Date(1965, 2, 25), Date(2025, 2, 25), 60},
		{"Day before birthday", Date(1965, 2, 25), Date(2025, 2, 24), 59},
		{"Day after birthday", Date(1965, 2, 25), Date(2025, 2, 26), 60},
		{"Month before birthday", Date(1965, 2, 25), Date(2025, 1, 25), 59},
		{"Month after birthday", Date(1965, 2, 25), Date(2025, 3, 25), 60},
		{"Leap day birth, Feb 28", Date(1964, 2, 29), Date(2025, 2, 28), 60},
		{"Leap day birth, leap day", Date(1964, 2, 29), Date(2024, 2, 29), 60},
		{"Hire at sixteen", Date(1990, 6, 1), Date(2006, 6, 1), 16},
		{"Hire a day short of sixteen", Date(1990, 6, 1), Date(2006, 5, 31), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestFirstOfNextMonth(t *testing.T) {
	assert.Equal(t, Date(2025, 2, 1), FirstOfNextMonth(Date(2025, 1, 17)))
	assert.Equal(t, Date(2026, 1, 1), FirstOfNextMonth(Date(2025, 12, 1)))
	assert.Equal(t, Date(2025, 6, 1), MonthStart(Date(2025, 6, 30)))
}

func TestMonthIndexRoundTrip(t *testing.T) {
	for _, d := range []time.Time{Date(2027, 1, 1), Date(2027, 12, 1), Date(1965, 5, 1)} {
		assert.Equal(t, d, MonthFromIndex(MonthIndex(d)))
	}
	assert.Equal(t, 1, MonthIndex(Date(2030, 2, 1))-MonthIndex(Date(2030, 1, 1)))
	assert.Equal(t, 1, MonthIndex(Date(2031, 1, 1))-MonthIndex(Date(2030, 12, 1)))
}

func TestAgeYearsMonths(t *testing.T) {
	dob := Date(1965, 5, 15)
	y, m := AgeYearsMonths(dob, Date(2045, 3, 1))
	assert.Equal(t, 79, y)
	assert.Equal(t, 10, m)
	assert.Equal(t, "62y 0m", FormatAgeYM(dob, BirthdayMonth(dob, 62)))
}

func TestYearBoundaries(t *testing.T) {
	assert.Equal(t, Date(2025, 12, 31), EndOfYear(2025))
	assert.Equal(t, Date(2026, 1, 1), BeginningOfYear(2026))
}
