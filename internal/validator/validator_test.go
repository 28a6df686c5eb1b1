// internal/validator/validator_test.go
package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidMoney(t *testing.T) {
	ok := []string{"0", "12", "12.5", "12.50", "-3.10", "99999999.99", " 7 "}
	bad := []string{"", "abc", "1.005", "100000000", "-100000000.00", "1e9", "1.0000"}

	for _, s := range ok {
		assert.True(t, ValidMoney(s), s)
	}
	for _, s := range bad {
		assert.False(t, ValidMoney(s), s)
	}
}

type sample struct {
	Amount   string  `json:"amount" validate:"required,money"`
	Date     string  `json:"date" validate:"required,isodate"`
	Category *string `json:"category" validate:"omitempty,category"`
	Method   string  `json:"payment_method" validate:"omitempty,paymentmethod"`
	Name     string  `json:"name" validate:"omitempty,notblank"`
}

func TestStructRules(t *testing.T) {
	cat := "dining_out"
	require.NoError(t, Validate.Struct(sample{Amount: "10.00", Date: "2024-02-29", Category: &cat, Method: "cash"}))

	bad := "SHOES"
	err := Validate.Struct(sample{Amount: "1.001", Date: "2023-02-29", Category: &bad, Method: "cheque", Name: "   "})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{
		"amount":         "money",
		"date":           "isodate",
		"category":       "category",
		"payment_method": "paymentmethod",
		"name":           "notblank",
	}, fields)
}
