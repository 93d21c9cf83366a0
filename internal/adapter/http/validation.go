package http

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	// non-negative decimal
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && !d.IsNegative()
	})
	// positive amount with at most 2 decimal places
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && d.IsPositive() && d.Equal(d.Round(2))
	})
	// positive quantity with at most 3 decimal places
	_ = v.RegisterValidation("qty", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && d.IsPositive() && d.Equal(d.Round(3))
	})
	// decimal lower bound, e.g. decmin=1000
	_ = v.RegisterValidation("decmin", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			return false
		}
		min, err := decimal.NewFromString(fl.Param())
		return err == nil && d.GreaterThanOrEqual(min)
	})

	return &CustomValidator{v: v}
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "decimal":
			out = append(out, FieldError{Field: field, Message: "must be a non-negative number"})
		case "money":
			out = append(out, FieldError{Field: field, Message: "must be a positive amount with at most 2 decimal places"})
		case "qty":
			out = append(out, FieldError{Field: field, Message: "must be a positive quantity with at most 3 decimal places"})
		case "decmin":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param()})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date formatted " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

func dec(n json.Number) decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(n.String()))
	return d
}
