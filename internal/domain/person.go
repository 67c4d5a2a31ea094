package domain

import (
	"time"

	"github.com/rpgo/projection-engine/pkg/dateutil"
)

// MinimumWorkingAge is the youngest allowed age at hire
const MinimumWorkingAge = 16

// Person identifies the plan participant. Exactly one of HireDate and
// YearsOfService is expected once validated.
type Person struct {
	BirthDate      Date  `yaml:"birth_date" json:"birth_date" toml:"birth_date"`
	HireDate       *Date `yaml:"hire_date,omitempty" json:"hire_date,omitempty" toml:"hire_date,omitempty"`
	YearsOfService *int  `yaml:"years_of_service,omitempty" json:"years_of_service,omitempty" toml:"years_of_service,omitempty"`
}

// Age returns the person's whole-year age at a date
func (p Person) Age(at time.Time) int {
	return dateutil.Age(p.BirthDate.Time, at)
}

// AgeAtHire returns the age on the hire date, if a hire date is known
func (p Person) AgeAtHire() (int, bool) {
	if p.HireDate == nil {
		return 0, false
	}
	return dateutil.Age(p.BirthDate.Time, p.HireDate.Time), true
}

// ServiceYears returns whole years of service at a date. An explicit
// YearsOfService is taken as already measured at that date.
func (p Person) ServiceYears(at time.Time) int {
	if p.HireDate != nil {
		years := dateutil.Age(p.HireDate.Time, at)
		if years < 0 {
			return 0
		}
		return years
	}
	if p.YearsOfService != nil {
		return *p.YearsOfService
	}
	return 0
}
