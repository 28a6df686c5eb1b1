// internal/dashboard/service.go
package dashboard

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/storage"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSeriesDays = 30
	MaxSeriesDays     = 366
)

type Service struct {
	store storage.AggregateStorage
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.AggregateStorage, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the wall clock; used by tests and the bot.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today is the current calendar date in the configured time zone.
func (s *Service) Today() time.Time {
	return domain.DateOf(s.now().In(s.loc))
}

// Summary computes the dashboard for ownerID as seen on asOf. A zero asOf
// means today.
func (s *Service) Summary(ctx context.Context, ownerID int64, asOf time.Time) (domain.DashboardSummary, error) {
	if asOf.IsZero() {
		asOf = s.Today()
	}
	asOf = domain.DateOf(asOf)

	curFrom, curTo := MonthWindow(asOf)
	prevFrom, prevTo := PreviousMonthWindow(asOf)

	var (
		current        []domain.CategoryTotal
		previous, week decimal.Decimal
		totals         domain.OwnerTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.store.CategoryTotals(gctx, ownerID, curFrom, curTo)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.store.SumBetween(gctx, ownerID, prevFrom, prevTo)
		return err
	})
	g.Go(func() error {
		var err error
		week, err = s.store.SumBetween(gctx, ownerID, WeekStart(asOf), asOf)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.store.OwnerTotals(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}

	currentTotal := sumTotals(current)
	top, topPct := TopCategory(current, currentTotal)

	summary := domain.DashboardSummary{
		CurrentMonthTotal:     currentTotal,
		PreviousMonthTotal:    previous,
		TrendPercentage:       Trend(currentTotal, previous),
		MonthlyAverage:        MonthlyAverage(totals, asOf),
		ActiveCategoriesCount: len(current),
		TopCategory:           top,
		TopCategoryPercentage: topPct,
		CurrentWeekTotal:      week,
	}
	slog.Debug("dashboard computed", "user_id", ownerID, "as_of", domain.FormatDate(asOf), "categories", len(current))
	return summary, nil
}

// CategoryBreakdown returns per-category totals for [from, to], largest first.
func (s *Service) CategoryBreakdown(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.CategoryTotal, error) {
	totals, err := s.store.CategoryTotals(ctx, ownerID, domain.DateOf(from), domain.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	return totals, nil
}

// DailySeries is an ascending run of days that have expenses. It can be
// iterated any number of times.
type DailySeries struct {
	From, To time.Time
	points   []domain.DailyTotal
}

func (d DailySeries) All() iter.Seq[domain.DailyTotal] {
	return func(yield func(domain.DailyTotal) bool) {
		for _, p := range d.points {
			if !yield(p) {
				return
			}
		}
	}
}

func (d DailySeries) Len() int { return len(d.points) }

// DailySeries covers the trailing window [today-(days-1), today]. days must
// be in 1..MaxSeriesDays.
func (s *Service) DailySeries(ctx context.Context, ownerID int64, days int) (DailySeries, error) {
	if days < 1 || days > MaxSeriesDays {
		return DailySeries{}, domain.FieldError("days", fmt.Sprintf("Ensure this value is between 1 and %d.", MaxSeriesDays))
	}
	to := s.Today()
	from := to.AddDate(0, 0, -(days - 1))

	points, err := s.store.DailyTotals(ctx, ownerID, from, to)
	if err != nil {
		return DailySeries{}, fmt.Errorf("daily series: %w", err)
	}
	return DailySeries{From: from, To: to, points: points}, nil
}
