// internal/storage/sqlite/sqlite_test.go
package sqlite

import (
	"context"
	"testing"
	"time"

	"spending-tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	ctx   context.Context
	store *Storage
	owner int64
	other int64
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := Open(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.store = store
	s.owner = s.createUser("owner@example.com", "owner")
	s.other = s.createUser("other@example.com", "other")
}

func (s *StorageSuite) TearDownTest() {
	s.store.Close()
}

func (s *StorageSuite) createUser(email, username string) int64 {
	u := &domain.User{Email: email, Username: username, PasswordHash: "hash"}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return u.ID
}

func (s *StorageSuite) addExpense(owner int64, day time.Time, amount, desc string, cat domain.Category) *domain.Expense {
	e := &domain.Expense{
		OwnerID:       owner,
		Amount:        decimal.RequireFromString(amount),
		Category:      cat,
		PaymentMethod: domain.PaymentCash,
		Description:   desc,
		Date:          day,
	}
	s.Require().NoError(s.store.CreateExpense(s.ctx, e))
	return e
}

func (s *StorageSuite) TestUsers() {
	u, err := s.store.GetUserByEmail(s.ctx, "owner@example.com")
	s.Require().NoError(err)
	s.Equal(s.owner, u.ID)
	s.False(u.CreatedAt.IsZero())

	err = s.store.CreateUser(s.ctx, &domain.User{Email: "owner@example.com", Username: "dup", PasswordHash: "x"})
	s.ErrorIs(err, domain.ErrEmailTaken)

	updated, err := s.store.UpdateUserNames(s.ctx, s.owner, "Ada", "Lovelace")
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", updated.FullName())

	s.Require().NoError(s.store.UpdatePassword(s.ctx, s.owner, "new-hash"))
	u, err = s.store.GetUserByID(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal("new-hash", u.PasswordHash)

	_, err = s.store.GetUserByID(s.ctx, 999)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.store.UpdatePassword(s.ctx, 999, "x"), domain.ErrNotFound)
}

func (s *StorageSuite) TestExpenseRoundTrip() {
	e := s.addExpense(s.owner, domain.Date(2024, time.February, 3), "12.34", "Lunch", domain.CategoryDiningOut)
	s.NotZero(e.ID)

	got, err := s.store.GetExpense(s.ctx, s.owner, e.ID)
	s.Require().NoError(err)
	s.Equal("12.34", got.Amount.StringFixed(2))
	s.Equal(domain.CategoryDiningOut, got.Category)
	s.Equal("2024-02-03", domain.FormatDate(got.Date))
	s.Equal("Lunch", got.Description)

	got.Amount = decimal.RequireFromString("20")
	got.Description = "Dinner"
	s.Require().NoError(s.store.UpdateExpense(s.ctx, got))

	again, err := s.store.GetExpense(s.ctx, s.owner, e.ID)
	s.Require().NoError(err)
	s.Equal("20.00", again.Amount.StringFixed(2))
	s.Equal("Dinner", again.Description)

	s.Require().NoError(s.store.DeleteExpense(s.ctx, s.owner, e.ID))
	_, err = s.store.GetExpense(s.ctx, s.owner, e.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StorageSuite) TestExpensesAreOwnerScoped() {
	e := s.addExpense(s.owner, domain.Date(2024, time.February, 3), "5", "", domain.CategoryOther)

	_, err := s.store.GetExpense(s.ctx, s.other, e.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	foreign := *e
	foreign.OwnerID = s.other
	s.ErrorIs(s.store.UpdateExpense(s.ctx, &foreign), domain.ErrNotFound)
	s.ErrorIs(s.store.DeleteExpense(s.ctx, s.other, e.ID), domain.ErrNotFound)

	items, _, err := s.store.ListExpenses(s.ctx, s.other, domain.ExpenseFilter{}, nil, 20)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *StorageSuite) TestListFilters() {
	s.addExpense(s.owner, domain.Date(2024, time.January, 5), "10", "Morning Coffee", domain.CategoryDiningOut)
	s.addExpense(s.owner, domain.Date(2024, time.January, 20), "30", "Groceries run", domain.CategoryGroceries)
	s.addExpense(s.owner, domain.Date(2024, time.February, 1), "7", "coffee beans", domain.CategoryGroceries)
	s.addExpense(s.other, domain.Date(2024, time.January, 6), "99", "coffee", domain.CategoryDiningOut)

	list := func(f domain.ExpenseFilter) []string {
		items, _, err := s.store.ListExpenses(s.ctx, s.owner, f, nil, 20)
		s.Require().NoError(err)
		out := make([]string, len(items))
		for i, e := range items {
			out[i] = e.Description
		}
		return out
	}

	s.Equal([]string{"coffee beans", "Morning Coffee"}, list(domain.ExpenseFilter{Search: "COFFEE"}))
	s.Equal([]string{"coffee beans", "Groceries run"}, list(domain.ExpenseFilter{Category: "groceries"}))

	from, to := domain.Date(2024, time.January, 6), domain.Date(2024, time.January, 31)
	s.Equal([]string{"Groceries run"}, list(domain.ExpenseFilter{MinDate: &from, MaxDate: &to}))

	s.Empty(list(domain.ExpenseFilter{Search: "%"}))
}

func (s *StorageSuite) TestListPagination() {
	day := domain.Date(2024, time.March, 1)
	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, s.addExpense(s.owner, day, "1", "", domain.CategoryOther).ID)
	}

	first, more, err := s.store.ListExpenses(s.ctx, s.owner, domain.ExpenseFilter{}, nil, 2)
	s.Require().NoError(err)
	s.True(more)
	s.Equal([]int64{ids[4], ids[3]}, idsOf(first))

	cur := &domain.Cursor{Date: day, ID: ids[3]}
	second, more, err := s.store.ListExpenses(s.ctx, s.owner, domain.ExpenseFilter{}, cur, 2)
	s.Require().NoError(err)
	s.True(more)
	s.Equal([]int64{ids[2], ids[1]}, idsOf(second))

	back := &domain.Cursor{Date: day, ID: ids[2], Reverse: true}
	prev, more, err := s.store.ListExpenses(s.ctx, s.owner, domain.ExpenseFilter{}, back, 2)
	s.Require().NoError(err)
	s.False(more)
	s.Equal([]int64{ids[4], ids[3]}, idsOf(prev))
}

func (s *StorageSuite) TestRecentExpenses() {
	s.addExpense(s.owner, domain.Date(2024, time.January, 1), "1", "old", domain.CategoryOther)
	s.addExpense(s.owner, domain.Date(2024, time.March, 1), "1", "new", domain.CategoryOther)
	s.addExpense(s.owner, domain.Date(2024, time.February, 1), "1", "mid", domain.CategoryOther)

	items, err := s.store.RecentExpenses(s.ctx, s.owner, 2)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("new", items[0].Description)
	s.Equal("mid", items[1].Description)
}

func (s *StorageSuite) TestAggregates() {
	s.addExpense(s.owner, domain.Date(2024, time.January, 15), "40", "", domain.CategoryHousing)
	s.addExpense(s.owner, domain.Date(2024, time.February, 1), "10.50", "", domain.CategoryGroceries)
	s.addExpense(s.owner, domain.Date(2024, time.February, 1), "4.50", "", domain.CategoryDiningOut)
	s.addExpense(s.owner, domain.Date(2024, time.February, 9), "15", "", domain.CategoryGroceries)
	s.addExpense(s.other, domain.Date(2024, time.February, 9), "500", "", domain.CategoryGroceries)

	from, to := domain.Date(2024, time.February, 1), domain.Date(2024, time.February, 29)

	sum, err := s.store.SumBetween(s.ctx, s.owner, from, to)
	s.Require().NoError(err)
	s.Equal("30.00", sum.StringFixed(2))

	totals, err := s.store.CategoryTotals(s.ctx, s.owner, from, to)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.Equal(domain.CategoryGroceries, totals[0].Category)
	s.Equal("25.50", totals[0].Total.StringFixed(2))
	s.Equal(domain.CategoryDiningOut, totals[1].Category)

	daily, err := s.store.DailyTotals(s.ctx, s.owner, from, to)
	s.Require().NoError(err)
	s.Require().Len(daily, 2)
	s.Equal("2024-02-01", domain.FormatDate(daily[0].Day))
	s.Equal("15.00", daily[0].Total.StringFixed(2))
	s.Equal("2024-02-09", domain.FormatDate(daily[1].Day))

	all, err := s.store.OwnerTotals(s.ctx, s.owner)
	s.Require().NoError(err)
	s.True(all.HasExpenses)
	s.Equal("2024-01-15", domain.FormatDate(all.FirstExpense))
	s.Equal("70.00", all.Total.StringFixed(2))

	none, err := s.store.OwnerTotals(s.ctx, s.createUser("new@example.com", "new"))
	s.Require().NoError(err)
	s.False(none.HasExpenses)
	s.True(none.Total.IsZero())
}

func (s *StorageSuite) TestTokenBlacklist() {
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.BlacklistToken(s.ctx, "old", s.owner, now.Add(-time.Minute)))
	s.Require().NoError(s.store.BlacklistToken(s.ctx, "live", s.owner, now.Add(time.Hour)))
	s.Require().NoError(s.store.BlacklistToken(s.ctx, "live", s.owner, now.Add(time.Hour)))

	ok, err := s.store.IsTokenBlacklisted(s.ctx, "live")
	s.Require().NoError(err)
	s.True(ok)

	n, err := s.store.PurgeExpiredTokens(s.ctx, now)
	s.Require().NoError(err)
	s.EqualValues(1, n)

	ok, err = s.store.IsTokenBlacklisted(s.ctx, "old")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StorageSuite) TestTelegramLinks() {
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.CreateLinkCode(s.ctx, "ABCD1234", s.owner, now.Add(10*time.Minute)))
	s.Require().NoError(s.store.CreateLinkCode(s.ctx, "EXPIRED1", s.owner, now.Add(-time.Second)))

	userID, err := s.store.ConsumeLinkCode(s.ctx, "ABCD1234", now)
	s.Require().NoError(err)
	s.Equal(s.owner, userID)

	_, err = s.store.ConsumeLinkCode(s.ctx, "ABCD1234", now)
	s.ErrorIs(err, domain.ErrLinkCodeInvalid)
	_, err = s.store.ConsumeLinkCode(s.ctx, "EXPIRED1", now)
	s.ErrorIs(err, domain.ErrLinkCodeInvalid)

	s.Require().NoError(s.store.LinkChat(s.ctx, 100, s.owner))
	s.Require().NoError(s.store.LinkChat(s.ctx, 100, s.other))
	got, err := s.store.UserIDByChat(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(s.other, got)

	s.Require().NoError(s.store.UnlinkChat(s.ctx, 100))
	_, err = s.store.UserIDByChat(s.ctx, 100)
	s.ErrorIs(err, domain.ErrNotFound)
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func idsOf(es []domain.Expense) []int64 {
	out := make([]int64, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}
