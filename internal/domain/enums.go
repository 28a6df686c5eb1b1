// internal/domain/enums.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryGroceries      Category = "GROCERIES"
	CategoryEntertainment  Category = "ENTERTAINMENT"
	CategoryUtilities      Category = "UTILITIES"
	CategoryDiningOut      Category = "DINING_OUT"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryHousing        Category = "HOUSING"
	CategoryHealthcare     Category = "HEALTHCARE"
	CategoryEducation      Category = "EDUCATION"
	CategoryOther          Category = "OTHER"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryGroceries,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryDiningOut,
	CategoryTransportation,
	CategoryHousing,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryEntertainment, CategoryUtilities, CategoryDiningOut,
		CategoryTransportation, CategoryHousing, CategoryHealthcare, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// Label is the human readable name.
func (c Category) Label() string {
	switch c {
	case CategoryGroceries:
		return "Groceries"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryUtilities:
		return "Utilities"
	case CategoryDiningOut:
		return "Dining Out"
	case CategoryTransportation:
		return "Transportation"
	case CategoryHousing:
		return "Housing"
	case CategoryHealthcare:
		return "Healthcare"
	case CategoryEducation:
		return "Education"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// Color is the chart color agreed with the frontend.
func (c Category) Color() string {
	switch c {
	case CategoryGroceries:
		return "#0f7b46"
	case CategoryUtilities:
		return "#d4a200"
	case CategoryEntertainment:
		return "#d42a2a"
	case CategoryTransportation:
		return "#083d7c"
	case CategoryDiningOut:
		return "#6b3ac9"
	case CategoryHealthcare:
		return "#00b6c7"
	case CategoryHousing:
		return "#8a5a2d"
	case CategoryEducation:
		return "#1e88e5"
	case CategoryOther:
		return "#ffffff"
	}
	return "#000000"
}

// ParseCategory accepts any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%q is not a valid category", s)
	}
	return c, nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal category: %q is not a valid category", string(c))
	}
	return json.Marshal(string(c))
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type PaymentMethod string

const (
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOther        PaymentMethod = "OTHER"
)

var PaymentMethods = []PaymentMethod{
	PaymentDebitCard,
	PaymentCreditCard,
	PaymentCash,
	PaymentBankTransfer,
	PaymentOther,
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentDebitCard, PaymentCreditCard, PaymentCash, PaymentBankTransfer, PaymentOther:
		return true
	}
	return false
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentDebitCard:
		return "Debit Card"
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentCash:
		return "Cash"
	case PaymentBankTransfer:
		return "Bank Transfer"
	case PaymentOther:
		return "Other"
	}
	return string(p)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	p := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%q is not a valid payment method", s)
	}
	return p, nil
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal payment method: %q is not a valid payment method", string(p))
	}
	return json.Marshal(string(p))
}

func (p *PaymentMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
