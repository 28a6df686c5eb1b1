// internal/storage/postgres/aggregates.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"spending-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// === AggregateStorage ===

func (s *Storage) SumBetween(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE owner_id = $1 AND date BETWEEN $2 AND $3
	`, ownerID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return numericToDecimal(total), nil
}

func (s *Storage) CategoryTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.CategoryTotal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category, SUM(amount) AS total
		FROM expenses
		WHERE owner_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY category
		ORDER BY total DESC, category ASC
	`, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var out []domain.CategoryTotal
	for rows.Next() {
		var (
			cat   string
			total pgtype.Numeric
		)
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, domain.CategoryTotal{Category: domain.Category(cat), Total: numericToDecimal(total)})
	}
	return out, rows.Err()
}

func (s *Storage) OwnerTotals(ctx context.Context, ownerID int64) (domain.OwnerTotals, error) {
	var (
		first *time.Time
		total pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, `
		SELECT MIN(date), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE owner_id = $1
	`, ownerID).Scan(&first, &total)
	if err != nil {
		return domain.OwnerTotals{}, fmt.Errorf("owner totals: %w", err)
	}
	if first == nil {
		return domain.OwnerTotals{Total: decimal.Zero}, nil
	}
	return domain.OwnerTotals{HasExpenses: true, FirstExpense: *first, Total: numericToDecimal(total)}, nil
}

func (s *Storage) DailyTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.DailyTotal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT date, SUM(amount)
		FROM expenses
		WHERE owner_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY date
		ORDER BY date ASC
	`, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyTotal
	for rows.Next() {
		var (
			day   time.Time
			total pgtype.Numeric
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, domain.DailyTotal{Day: day, Total: numericToDecimal(total)})
	}
	return out, rows.Err()
}
