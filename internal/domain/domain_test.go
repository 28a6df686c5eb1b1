// internal/domain/domain_test.go
package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" dining_out ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDiningOut, c)
	assert.Equal(t, "Dining Out", c.Label())

	_, err = ParseCategory("FUEL")
	assert.Error(t, err)
}

func TestCategoriesHaveLabelsAndColors(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid())
		assert.NotEqual(t, string(c), c.Label())
		assert.NotEqual(t, "#000000", c.Color())
	}
	assert.Equal(t, "#000000", Category("FUEL").Color())
}

func TestEnumJSON(t *testing.T) {
	var body struct {
		Category      Category      `json:"category"`
		PaymentMethod PaymentMethod `json:"payment_method"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":"groceries","payment_method":"Credit_Card"}`), &body))
	assert.Equal(t, CategoryGroceries, body.Category)
	assert.Equal(t, PaymentCreditCard, body.PaymentMethod)

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"GROCERIES","payment_method":"CREDIT_CARD"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"category":"FUEL"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"payment_method":"CHEQUE"}`), &body))

	_, err = json.Marshal(Category("FUEL"))
	assert.Error(t, err)
}

func TestPaymentMethodLabels(t *testing.T) {
	for _, p := range PaymentMethods {
		assert.True(t, p.Valid())
		assert.NotEmpty(t, p.Label())
	}
	p, err := ParsePaymentMethod("bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, "Bank Transfer", p.Label())
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{Date: Date(2024, time.February, 29), ID: 17, Reverse: true}

	got, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "!!!", "bm90LWpzb24", Cursor{Date: Date(2024, 1, 1)}.Encode()} {
		_, err := DecodeCursor(s)
		assert.Error(t, err, s)
	}
}

func TestBuildPage(t *testing.T) {
	items := []Expense{
		{ID: 9, Date: Date(2024, time.March, 3)},
		{ID: 8, Date: Date(2024, time.March, 2)},
	}

	t.Run("empty", func(t *testing.T) {
		p := BuildPage(nil, false, &Cursor{ID: 1})
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Previous)
	})

	t.Run("first page with more", func(t *testing.T) {
		p := BuildPage(items, true, nil)
		require.NotNil(t, p.Next)
		assert.Equal(t, Cursor{Date: items[1].Date, ID: 8}, *p.Next)
		assert.Nil(t, p.Previous)
	})

	t.Run("last page after cursor", func(t *testing.T) {
		p := BuildPage(items, false, &Cursor{ID: 10})
		assert.Nil(t, p.Next)
		require.NotNil(t, p.Previous)
		assert.Equal(t, Cursor{Date: items[0].Date, ID: 9, Reverse: true}, *p.Previous)
	})

	t.Run("walking back to the first page", func(t *testing.T) {
		p := BuildPage(items, false, &Cursor{ID: 7, Reverse: true})
		require.NotNil(t, p.Next)
		assert.Equal(t, Cursor{Date: items[1].Date, ID: 8}, *p.Next)
		assert.Nil(t, p.Previous)
	})
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("password", "This password is too short.")
	v.Add("email", "Enter a valid email address.")
	v.Add("password", "This password is too common.")

	err := v.OrNil()
	require.Error(t, err)
	assert.Equal(t, "invalid input: email: Enter a valid email address.; "+
		"password: This password is too short., This password is too common.", err.Error())

	fe := FieldError("days", "bad")
	assert.Equal(t, map[string][]string{"days": {"bad"}}, fe.Fields)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	at := time.Date(2024, time.March, 1, 1, 30, 0, 0, loc)
	assert.Equal(t, Date(2024, time.March, 1), DateOf(at))
	assert.Equal(t, "2024-03-01", FormatDate(DateOf(at)))
}
