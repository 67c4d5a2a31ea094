package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerson_Age(t *testing.T) {
	p := Person{BirthDate: NewDate(1963, 6, 15)}

	testCases := []struct {
		atDate   time.Time
		expected int
		desc     string
	}{
		{time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), 61, "day before birthday"},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 62, "on birthday"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 62, "end of year"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, p.Age(tc.atDate))
		})
	}
}

func TestPerson_AgeAtHire(t *testing.T) {
	hire := NewDate(1985, 3, 20)
	p := Person{BirthDate: NewDate(1963, 6, 15), HireDate: &hire}
	age, ok := p.AgeAtHire()
	assert.True(t, ok)
	assert.Equal(t, 21, age)

	_, ok = Person{BirthDate: NewDate(1963, 6, 15)}.AgeAtHire()
	assert.False(t, ok)
}

func TestPerson_ServiceYears(t *testing.T) {
	hire := NewDate(2001, 7, 1)
	p := Person{BirthDate: NewDate(1970, 1, 1), HireDate: &hire}
	assert.Equal(t, 24, p.ServiceYears(NewDate(2025, 12, 31).Time))
	assert.Equal(t, 0, p.ServiceYears(NewDate(2000, 1, 1).Time))

	yos := 12
	explicit := Person{BirthDate: NewDate(1970, 1, 1), YearsOfService: &yos}
	assert.Equal(t, 12, explicit.ServiceYears(NewDate(2025, 12, 31).Time))

	assert.Equal(t, 0, Person{}.ServiceYears(NewDate(2025, 12, 31).Time))
}
