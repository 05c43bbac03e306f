package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"employee_management/types"

	"github.com/go-playground/validator/v10"
)

// Departments accepted on employee records.
var Departments = []string{
	"HR", "Engineering", "Marketing", "Sales", "Finance", "Operations",
	"IT", "Legal", "Customer Service", "Research & Development",
}

// Months are the period names stored on monthly records.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		now := time.Now()
		endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		return !t.After(endOfToday)
	})

	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return contains(Departments, fl.Field().String())
	})

	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		return contains(Months, fl.Field().String())
	})

	return v
}

// Struct validates s and returns a VALIDATION_ERROR AppError listing every rejected field.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.NewAppError(types.CodeValidation, types.ErrValidation, err)
	}

	fields := make([]types.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, types.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return &types.AppError{
		Code:    types.CodeValidation,
		Message: types.ErrValidation,
		Fields:  fields,
		Err:     err,
	}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future", field)
	case "department":
		return "Please select a valid department"
	case "month":
		return "Please provide a valid month name"
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
