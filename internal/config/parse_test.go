package config

import (
	"errors"
	"testing"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormDate(t *testing.T) {
	d, err := ParseFormDate("dob", "03/10/1970")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(1970, 3, 10), d)

	for _, bad := range []string{"1970-03-10", "3/10/70", "13/01/1970", "02/30/2020", ""} {
		_, err := ParseFormDate("dob", bad)
		var formatErr *InputFormatError
		require.True(t, errors.As(err, &formatErr), bad)
		assert.Equal(t, "dob", formatErr.Field)
		assert.Equal(t, "MM/DD/YYYY", formatErr.Expected)
	}
}

func TestParseMoney(t *testing.T) {
	good := map[string]string{
		"100,000.00":   "100000",
		"999.99":       "999.99",
		" 1,234.56 ":   "1234.56",
		"1,000,000.10": "1000000.1",
	}
	for in, want := range good {
		got, err := ParseMoney("pay", in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	for _, bad := range []string{"100000", "100,000", "1,00,000.00", "100000.00.00", "-5.00", "abc", "1234.56", "$1,234.56"} {
		_, err := ParseMoney("pay", bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestParsePercentRate(t *testing.T) {
	got, err := ParsePercentRate("rate", "5.50")
	require.NoError(t, err)
	assert.Equal(t, "0.055", got.String())

	got, err = ParsePercentRate("rate", "0.00")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	for _, bad := range []string{"5.5", "5", "5.505", "-1.00", ".50"} {
		_, err := ParsePercentRate("rate", bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWholeNumber(t *testing.T) {
	n, err := ParseWholeNumber("age", " 65 ")
	require.NoError(t, err)
	assert.Equal(t, 65, n)

	_, err = ParseWholeNumber("age", "sixty")
	assert.ErrorContains(t, err, "age: invalid format")
}

func validForm() AccumulationForm {
	return AccumulationForm{
		BirthDate:      "03/10/1970",
		YearsOfService: "20",
		EligiblePay:    "100,000.00",
		ReturnRate:     "5.50",
		PayGrowthRate:  "3.00",
		TargetAge:      "65",
	}
}

func TestParseAccumulationForm(t *testing.T) {
	plan, err := ParseAccumulationForm(validForm())
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(1970, 3, 10), plan.Person.BirthDate)
	require.NotNil(t, plan.Person.YearsOfService)
	assert.Equal(t, 20, *plan.Person.YearsOfService)
	assert.Equal(t, "100000", plan.EligiblePay.String())
	assert.Equal(t, "0.055", plan.ReturnRate.String())
	assert.Equal(t, "0.03", plan.PayGrowthRate.String())
	assert.Equal(t, 65, plan.TargetAge)

	form := validForm()
	form.YearsOfService = ""
	form.HireDate = "06/01/1995"
	plan, err = ParseAccumulationForm(form)
	require.NoError(t, err)
	require.NotNil(t, plan.Person.HireDate)
	assert.Nil(t, plan.Person.YearsOfService)
}

func TestParseAccumulationForm_Errors(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		form := validForm()
		form.HireDate = "06/01/1995"
		_, err := ParseAccumulationForm(form)
		var conflict *InputConflictError
		assert.True(t, errors.As(err, &conflict))
	})

	t.Run("missing both", func(t *testing.T) {
		form := validForm()
		form.YearsOfService = ""
		_, err := ParseAccumulationForm(form)
		var conflict *InputConflictError
		assert.True(t, errors.As(err, &conflict))
	})

	t.Run("reports every format problem", func(t *testing.T) {
		form := validForm()
		form.BirthDate = "1970-03-10"
		form.EligiblePay = "100000"
		form.ReturnRate = "5.5"
		_, err := ParseAccumulationForm(form)
		issues := Issues(err)
		require.Len(t, issues, 3)
		for _, issue := range issues {
			assert.Equal(t, "format", issue.Kind)
		}
		assert.Equal(t, []string{"birth_date", "eligible_pay", "return_rate"},
			[]string{issues[0].Field, issues[1].Field, issues[2].Field})
	})

	t.Run("range checked after parsing", func(t *testing.T) {
		form := validForm()
		form.YearsOfService = ""
		form.HireDate = "01/01/1980"
		_, err := ParseAccumulationForm(form)
		var rangeErr *InputRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, "person.hire_date", rangeErr.Field)
	})
}
