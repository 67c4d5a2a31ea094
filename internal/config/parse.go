package config

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// FormDateLayout is the layout of dates typed into forms
const FormDateLayout = "01/02/2006"

var (
	moneyPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})*\.\d{2}$`)
	ratePattern  = regexp.MustCompile(`^\d+\.\d{2}$`)
	hundred      = decimal.NewFromInt(100)
)

// ParseFormDate parses a MM/DD/YYYY date
func ParseFormDate(field, raw string) (domain.Date, error) {
	t, err := time.Parse(FormDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return domain.Date{}, &InputFormatError{Field: field, Value: raw, Expected: "MM/DD/YYYY"}
	}
	return domain.NewDate(t.Year(), t.Month(), t.Day()), nil
}

// ParseMoney parses a grouped amount with cents such as 100,000.00
func ParseMoney(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !moneyPattern.MatchString(s) {
		return decimal.Zero, &InputFormatError{Field: field, Value: raw, Expected: "an amount like 100,000.00"}
	}
	return decimal.RequireFromString(strings.ReplaceAll(s, ",", "")), nil
}

// ParsePercentRate parses a percentage with two decimals such as 5.50 into a
// fraction (0.055).
func ParsePercentRate(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !ratePattern.MatchString(s) {
		return decimal.Zero, &InputFormatError{Field: field, Value: raw, Expected: "a rate like 5.50"}
	}
	return decimal.RequireFromString(s).Div(hundred), nil
}

// ParseWholeNumber parses a non-signed integer such as an age or a year
func ParseWholeNumber(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InputFormatError{Field: field, Value: raw, Expected: "a whole number"}
	}
	return n, nil
}

// AccumulationForm holds the raw strings of the accumulation calculator form
type AccumulationForm struct {
	BirthDate      string
	HireDate       string
	YearsOfService string
	EligiblePay    string
	ReturnRate     string
	PayGrowthRate  string
	TargetAge      string
}

// ParseAccumulationForm turns raw form input into a validated plan. Format
// problems and the hire date / years of service conflict are reported before
// range checks run.
func ParseAccumulationForm(form AccumulationForm) (*domain.AccumulationPlan, error) {
	c := &collector{}
	plan := &domain.AccumulationPlan{}

	if form.HireDate != "" && form.YearsOfService != "" {
		c.conflict("hire_date", "years_of_service", "provide either a hire date or years of service, not both")
	} else if form.HireDate == "" && form.YearsOfService == "" {
		c.conflict("hire_date", "years_of_service", "provide either a hire date or years of service")
	}

	var err error
	plan.Person.BirthDate, err = ParseFormDate("birth_date", form.BirthDate)
	c.add(err)
	if form.HireDate != "" {
		hire, err := ParseFormDate("hire_date", form.HireDate)
		c.add(err)
		if err == nil {
			plan.Person.HireDate = &hire
		}
	}
	if form.YearsOfService != "" {
		yos, err := ParseWholeNumber("years_of_service", form.YearsOfService)
		c.add(err)
		if err == nil {
			plan.Person.YearsOfService = &yos
		}
	}
	plan.EligiblePay, err = ParseMoney("eligible_pay", form.EligiblePay)
	c.add(err)
	plan.ReturnRate, err = ParsePercentRate("return_rate", form.ReturnRate)
	c.add(err)
	plan.PayGrowthRate, err = ParsePercentRate("pay_growth_rate", form.PayGrowthRate)
	c.add(err)
	plan.TargetAge, err = ParseWholeNumber("target_age", form.TargetAge)
	c.add(err)

	if err := c.err(); err != nil {
		return nil, err
	}
	if err := ValidateAccumulationPlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}
