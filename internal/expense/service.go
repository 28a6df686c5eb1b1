// internal/expense/service.go
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/events"
	"spending-tracker/internal/storage"

	"github.com/shopspring/decimal"
)

// RecentLimit is how many expenses the "recent" view returns.
const RecentLimit = 5

// Changes carries the fields of a create or update. Nil means "not provided".
type Changes struct {
	Amount        *decimal.Decimal
	Category      *domain.Category
	PaymentMethod *domain.PaymentMethod
	Description   *string
	Date          *time.Time
}

type Service struct {
	store     storage.ExpenseStorage
	publisher events.Publisher
	now       func() time.Time
}

func NewService(store storage.ExpenseStorage, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{store: store, publisher: publisher, now: time.Now}
}

// Create stores a new expense owned by p. Amount and date are required;
// category and payment method default to OTHER.
func (s *Service) Create(ctx context.Context, p domain.Principal, ch Changes) (*domain.Expense, error) {
	verr := domain.NewValidationError()
	if ch.Amount == nil {
		verr.Add("amount", "This field is required.")
	}
	if ch.Date == nil {
		verr.Add("date", "This field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	e := &domain.Expense{
		OwnerID:       p.UserID,
		Category:      domain.CategoryOther,
		PaymentMethod: domain.PaymentOther,
	}
	apply(e, ch)

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	slog.Info("Expense created", "user_id", p.UserID, "expense_id", e.ID)
	s.publish(ctx, events.ExpenseCreated, *e)
	return e, nil
}

func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Expense, error) {
	return s.store.GetExpense(ctx, p.UserID, id)
}

// Update applies ch to the caller's expense id.
func (s *Service) Update(ctx context.Context, p domain.Principal, id int64, ch Changes) (*domain.Expense, error) {
	e, err := s.store.GetExpense(ctx, p.UserID, id)
	if err != nil {
		return nil, err
	}
	apply(e, ch)
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}
	slog.Info("Expense updated", "user_id", p.UserID, "expense_id", e.ID)
	s.publish(ctx, events.ExpenseUpdated, *e)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if err := s.store.DeleteExpense(ctx, p.UserID, id); err != nil {
		return err
	}
	slog.Info("Expense deleted", "user_id", p.UserID, "expense_id", id)
	s.publish(ctx, events.ExpenseDeleted, domain.Expense{ID: id, OwnerID: p.UserID})
	return nil
}

// List returns one page of the caller's expenses, newest first.
func (s *Service) List(ctx context.Context, p domain.Principal, f domain.ExpenseFilter, cur *domain.Cursor) (domain.ExpensePage, error) {
	items, hasMore, err := s.store.ListExpenses(ctx, p.UserID, f, cur, domain.PageSize)
	if err != nil {
		return domain.ExpensePage{}, err
	}
	return domain.BuildPage(items, hasMore, cur), nil
}

func (s *Service) Recent(ctx context.Context, p domain.Principal) ([]domain.Expense, error) {
	return s.store.RecentExpenses(ctx, p.UserID, RecentLimit)
}

func apply(e *domain.Expense, ch Changes) {
	if ch.Amount != nil {
		e.Amount = *ch.Amount
	}
	if ch.Category != nil {
		e.Category = *ch.Category
	}
	if ch.PaymentMethod != nil {
		e.PaymentMethod = *ch.PaymentMethod
	}
	if ch.Description != nil {
		e.Description = *ch.Description
	}
	if ch.Date != nil {
		e.Date = domain.DateOf(*ch.Date)
	}
}

// publish never fails the caller; the change is already committed.
func (s *Service) publish(ctx context.Context, t events.Type, e domain.Expense) {
	if err := s.publisher.Publish(ctx, events.NewExpenseEvent(t, e, s.now())); err != nil {
		slog.Error("Failed to publish expense event", "error", err, "type", t, "expense_id", e.ID)
	}
}
