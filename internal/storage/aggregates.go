// internal/storage/aggregates.go
package storage

//go:generate mockgen -source=aggregates.go -destination=mocks/mock_aggregates.go -package=mocks

import (
	"context"
	"time"

	"spending-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// AggregateStorage answers the dashboard's read queries. All date bounds are
// inclusive calendar dates.
type AggregateStorage interface {
	SumBetween(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error)
	// CategoryTotals is ordered by total desc, then category asc.
	CategoryTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.CategoryTotal, error)
	OwnerTotals(ctx context.Context, ownerID int64) (domain.OwnerTotals, error)
	// DailyTotals only returns days that have expenses, ascending.
	DailyTotals(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.DailyTotal, error)
}
