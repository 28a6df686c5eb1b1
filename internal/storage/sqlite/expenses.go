// internal/storage/sqlite/expenses.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/storage"
)

const expenseColumns = "id, owner_id, amount_cents, category, payment_method, description, date, created_at, updated_at"

func scanExpense(row rowScanner) (domain.Expense, error) {
	var (
		e                     domain.Expense
		cents                 int64
		cat, pm               string
		day, created, updated string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &cents, &cat, &pm, &e.Description, &day, &created, &updated); err != nil {
		return e, err
	}
	var err error
	if e.Date, err = domain.ParseDate(day); err != nil {
		return e, fmt.Errorf("parse date: %w", err)
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return e, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updated); err != nil {
		return e, fmt.Errorf("parse updated_at: %w", err)
	}
	e.Amount = fromCents(cents)
	e.Category = domain.Category(cat)
	e.PaymentMethod = domain.PaymentMethod(pm)
	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]domain.Expense, error) {
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
	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (owner_id, amount_cents, category, payment_method, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.OwnerID, centsOf(e.Amount), string(e.Category), string(e.PaymentMethod), e.Description,
		domain.FormatDate(e.Date), now, now)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("expense id: %w", err)
	}
	e.CreatedAt, _ = parseTime(now)
	e.UpdatedAt = e.CreatedAt
	return nil
}

func (s *Storage) GetExpense(ctx context.Context, ownerID, id int64) (*domain.Expense, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ? AND owner_id = ?", id, ownerID)
	e, err := scanExpense(row)
	if err != nil {
		return nil, notFound(err, "find expense")
	}
	return &e, nil
}

func (s *Storage) UpdateExpense(ctx context.Context, e *domain.Expense) error {
	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET amount_cents = ?, category = ?, payment_method = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, centsOf(e.Amount), string(e.Category), string(e.PaymentMethod), e.Description,
		domain.FormatDate(e.Date), now, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	stored, err := s.GetExpense(ctx, e.OwnerID, e.ID)
	if err != nil {
		return err
	}
	e.CreatedAt, e.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) ListExpenses(ctx context.Context, ownerID int64, f domain.ExpenseFilter, cur *domain.Cursor, limit int) ([]domain.Expense, bool, error) {
	q := storage.BuildExpenseList(storage.SQLite, ownerID, f, cur, limit)
	rows, err := s.db.QueryContext(ctx, q.SQL("SELECT "+expenseColumns+" FROM expenses"), q.Args...)
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
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE owner_id = ?
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT ?
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return collectExpenses(rows)
}
