// internal/validator/validator.go
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"spending-tracker/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmount is the exclusive bound on |amount|: 10 digits, 2 of them decimals.
var MaxAmount = decimal.New(1, 8)

var Validate *validator.Validate

var nonSpace = regexp.MustCompile(`\S`)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	Validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// string is not empty and not only whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})

	// calendar date: "2024-12-31"
	_ = Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	_ = Validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})

	_ = Validate.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePaymentMethod(fl.Field().String())
		return err == nil
	})

	_ = Validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return ValidMoney(fl.Field().String())
	})
}

// ValidMoney accepts decimals with at most 2 fractional digits and |x| < MaxAmount.
func ValidMoney(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if d.Exponent() < -2 {
		return false
	}
	return d.Abs().LessThan(MaxAmount)
}
