// internal/events/events_test.go
package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"spending-tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseEvent(t *testing.T) {
	at := time.Date(2024, 2, 5, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	e := domain.Expense{
		ID:            12,
		OwnerID:       3,
		Amount:        decimal.RequireFromString("19.9"),
		Category:      domain.CategoryDiningOut,
		PaymentMethod: domain.PaymentCreditCard,
		Date:          domain.Date(2024, 2, 4),
	}

	body, err := NewExpenseEvent(ExpenseCreated, e, at).ToJSON()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "expense.created", got["type"])
	assert.Equal(t, "19.90", got["amount"])
	assert.Equal(t, "DINING_OUT", got["category"])
	assert.Equal(t, "2024-02-04", got["date"])
	assert.Equal(t, "2024-02-05T09:00:00Z", got["occurred_at"])
}

func TestDeletedEventCarriesOnlyIdentity(t *testing.T) {
	ev := NewExpenseEvent(ExpenseDeleted, domain.Expense{ID: 1, OwnerID: 2, Amount: decimal.NewFromInt(5)}, time.Now())
	assert.Empty(t, ev.Amount)
	assert.Empty(t, ev.Date)
	assert.Equal(t, int64(1), ev.ExpenseID)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), ExpenseEvent{Type: ExpenseCreated}))
	assert.NoError(t, p.Close())
}
