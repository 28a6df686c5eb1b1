// internal/storage/postgres/expenses.go
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// === ExpenseStorage ===

const expenseColumns = "id, owner_id, amount, category, payment_method, description, date, created_at, updated_at"

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var (
		e      domain.Expense
		amount pgtype.Numeric
		cat    string
		pm     string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &amount, &cat, &pm, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return e, err
	}
	e.Amount = numericToDecimal(amount)
	e.Category = domain.Category(cat)
	e.PaymentMethod = domain.PaymentMethod(pm)
	return e, nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *Storage) CreateExpense(ctx context.Context, e *domain.Expense) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO expenses (owner_id, amount, category, payment_method, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.OwnerID, e.Amount, string(e.Category), string(e.PaymentMethod), e.Description, e.Date).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	slog.Debug("Expense created", "owner_id", e.OwnerID, "expense_id", e.ID)
	return nil
}

func (s *Storage) GetExpense(ctx context.Context, ownerID, id int64) (*domain.Expense, error) {
	row := s.db.QueryRow(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = $1 AND owner_id = $2", id, ownerID)
	e, err := scanExpense(row)
	if err != nil {
		return nil, notFound(err, "find expense")
	}
	return &e, nil
}

func (s *Storage) UpdateExpense(ctx context.Context, e *domain.Expense) error {
	err := s.db.QueryRow(ctx, `
		UPDATE expenses
		SET amount = $3, category = $4, payment_method = $5, description = $6, date = $7, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING created_at, updated_at
	`, e.ID, e.OwnerID, e.Amount, string(e.Category), string(e.PaymentMethod), e.Description, e.Date).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return notFound(err, "update expense")
	}
	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) ListExpenses(ctx context.Context, ownerID int64, f domain.ExpenseFilter, cur *domain.Cursor, limit int) ([]domain.Expense, bool, error) {
	q := storage.BuildExpenseList(storage.Postgres, ownerID, f, cur, limit)
	rows, err := s.db.Query(ctx, q.SQL("SELECT "+expenseColumns+" FROM expenses"), q.Args...)
	if err != nil {
		return nil, false, fmt.Errorf("list expenses: %w", err)
	}
	out, err := collectExpenses(rows)
	if err != nil {
		return nil, false, err
	}
	items, hasMore := storage.TrimPage(out, cur, limit)
	return items, hasMore, nil
}

func (s *Storage) RecentExpenses(ctx context.Context, ownerID int64, limit int) ([]domain.Expense, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return collectExpenses(rows)
}
