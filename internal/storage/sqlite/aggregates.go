// internal/storage/sqlite/aggregates.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"spending-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

func (s *Storage) SumBetween(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE owner_id = ? AND date BETWEEN ? AND ?
	`, ownerID, domain.FormatDate(from), domain.FormatDate(to)).Scan(&cents)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return fromCents(cents), nil
}

func (s *Storage) CategoryTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents) AS total
		FROM expenses
		WHERE owner_id = ? AND date BETWEEN ? AND ?
		GROUP BY category
		ORDER BY total DESC, category ASC
	`, ownerID, domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var out []domain.CategoryTotal
	for rows.Next() {
		var (
			cat   string
			cents int64
		)
		if err := rows.Scan(&cat, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, domain.CategoryTotal{Category: domain.Category(cat), Total: fromCents(cents)})
	}
	return out, rows.Err()
}

func (s *Storage) OwnerTotals(ctx context.Context, ownerID int64) (domain.OwnerTotals, error) {
	var (
		first sql.NullString
		cents int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT MIN(date), COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE owner_id = ?
	`, ownerID).Scan(&first, &cents)
	if err != nil {
		return domain.OwnerTotals{}, fmt.Errorf("owner totals: %w", err)
	}
	if !first.Valid {
		return domain.OwnerTotals{Total: decimal.Zero}, nil
	}
	day, err := domain.ParseDate(first.String)
	if err != nil {
		return domain.OwnerTotals{}, fmt.Errorf("parse first date: %w", err)
	}
	return domain.OwnerTotals{HasExpenses: true, FirstExpense: day, Total: fromCents(cents)}, nil
}

func (s *Storage) DailyTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.DailyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, SUM(amount_cents)
		FROM expenses
		WHERE owner_id = ? AND date BETWEEN ? AND ?
		GROUP BY date
		ORDER BY date ASC
	`, ownerID, domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyTotal
	for rows.Next() {
		var (
			day   string
			cents int64
		)
		if err := rows.Scan(&day, &cents); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		d, err := domain.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parse day: %w", err)
		}
		out = append(out, domain.DailyTotal{Day: d, Total: fromCents(cents)})
	}
	return out, rows.Err()
}
