// internal/events/events.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"spending-tracker/internal/domain"
)

type Type string

const (
	ExpenseCreated Type = "expense.created"
	ExpenseUpdated Type = "expense.updated"
	ExpenseDeleted Type = "expense.deleted"
)

// ExpenseEvent is the message body published for every expense change.
type ExpenseEvent struct {
	Type          Type      `json:"type"`
	ExpenseID     int64     `json:"expense_id"`
	OwnerID       int64     `json:"owner_id"`
	Amount        string    `json:"amount,omitempty"`
	Category      string    `json:"category,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Date          string    `json:"date,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewExpenseEvent(t Type, e domain.Expense, at time.Time) ExpenseEvent {
	ev := ExpenseEvent{
		Type:       t,
		ExpenseID:  e.ID,
		OwnerID:    e.OwnerID,
		OccurredAt: at.UTC(),
	}
	if t != ExpenseDeleted {
		ev.Amount = e.Amount.StringFixed(2)
		ev.Category = string(e.Category)
		ev.PaymentMethod = string(e.PaymentMethod)
		ev.Date = domain.FormatDate(e.Date)
	}
	return ev
}

func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, ev ExpenseEvent) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ExpenseEvent) error { return nil }
func (Nop) Close() error                                { return nil }
