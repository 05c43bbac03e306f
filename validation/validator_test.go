package validation_test

import (
	"testing"
	"time"

	"employee_management/types"
	"employee_management/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email      string     `json:"email" validate:"required,email"`
	Department string     `json:"department" validate:"omitempty,department"`
	Month      string     `json:"month" validate:"omitempty,month"`
	Days       int        `json:"days" validate:"gte=0"`
	HireDate   *time.Time `json:"hire_date" validate:"omitempty,notfuture"`
}

func TestStructValid(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	err := validation.Struct(sample{
		Email:      "jane@company.com",
		Department: "Engineering",
		Month:      "March",
		HireDate:   &yesterday,
	})

	require.NoError(t, err)
}

func TestStructCollectsFieldErrors(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 2)
	err := validation.Struct(sample{
		Email:      "not-an-email",
		Department: "Kitchen",
		Month:      "Smarch",
		Days:       -1,
		HireDate:   &tomorrow,
	})
	require.Error(t, err)

	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, types.CodeValidation, appErr.Code)

	byField := map[string]string{}
	for _, f := range appErr.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Please provide a valid email address", byField["email"])
	assert.Equal(t, "Please select a valid department", byField["department"])
	assert.Equal(t, "Please provide a valid month name", byField["month"])
	assert.Equal(t, "days must be greater than or equal to 0", byField["days"])
	assert.Equal(t, "hire_date cannot be in the future", byField["hire_date"])
}

func TestStructRequired(t *testing.T) {
	err := validation.Struct(sample{})

	appErr, ok := types.AsAppError(err)
	require.True(t, ok)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "email is required", appErr.Fields[0].Message)
}
