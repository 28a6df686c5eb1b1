// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// FullName returns first + last name, trimmed when either is blank.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal is the authenticated caller. Handlers pass it explicitly instead of
// reading a request-global user.
type Principal struct {
	UserID int64
}

type Expense struct {
	ID            int64
	OwnerID       int64
	Amount        decimal.Decimal
	Category      Category
	PaymentMethod PaymentMethod
	Description   string
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpenseFilter holds typed list filters. Zero values mean "not set".
type ExpenseFilter struct {
	Search   string
	Category string
	MinDate  *time.Time
	MaxDate  *time.Time
}

// CategoryTotal is the summed amount for one category in a window
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
}

// DailyTotal is one point of the daily series
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// OwnerTotals holds all-time figures for one owner.
type OwnerTotals struct {
	HasExpenses  bool
	FirstExpense time.Time
	Total        decimal.Decimal
}

type DashboardSummary struct {
	CurrentMonthTotal     decimal.Decimal
	PreviousMonthTotal    decimal.Decimal
	TrendPercentage       decimal.Decimal
	MonthlyAverage        decimal.Decimal
	ActiveCategoriesCount int
	TopCategory           *Category
	TopCategoryPercentage decimal.Decimal
	CurrentWeekTotal      decimal.Decimal
}

// TelegramLink binds a chat to a user.
type TelegramLink struct {
	ChatID int64
	UserID int64
}
