// internal/handler/dto.go
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/expense"

	"github.com/shopspring/decimal"
)

// === requests ===

// moneyInput accepts both "12.50" and 12.5 so clients can send either.
type moneyInput string

func (m *moneyInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = moneyInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("amount must be a number or a numeric string")
	}
	*m = moneyInput(n.String())
	return nil
}

type ExpenseRequest struct {
	Amount        *moneyInput `json:"amount" validate:"required,money"`
	Category      *string     `json:"category" validate:"omitempty,category"`
	PaymentMethod *string     `json:"payment_method" validate:"omitempty,paymentmethod"`
	Description   *string     `json:"description"`
	Date          *string     `json:"date" validate:"required,isodate"`
}

// ExpensePatchRequest is ExpenseRequest with every field optional.
type ExpensePatchRequest struct {
	Amount        *moneyInput `json:"amount" validate:"omitempty,money"`
	Category      *string     `json:"category" validate:"omitempty,category"`
	PaymentMethod *string     `json:"payment_method" validate:"omitempty,paymentmethod"`
	Description   *string     `json:"description"`
	Date          *string     `json:"date" validate:"omitempty,isodate"`
}

func (r ExpensePatchRequest) changes() (expense.Changes, error) {
	var ch expense.Changes
	verr := domain.NewValidationError()

	if r.Amount != nil {
		d, err := decimal.NewFromString(strings.TrimSpace(string(*r.Amount)))
		if err != nil {
			verr.Add("amount", "A valid number is required.")
		} else {
			ch.Amount = &d
		}
	}
	if r.Category != nil {
		cat, err := domain.ParseCategory(*r.Category)
		if err != nil {
			verr.Add("category", err.Error())
		} else {
			ch.Category = &cat
		}
	}
	if r.PaymentMethod != nil {
		pm, err := domain.ParsePaymentMethod(*r.PaymentMethod)
		if err != nil {
			verr.Add("payment_method", err.Error())
		} else {
			ch.PaymentMethod = &pm
		}
	}
	if r.Description != nil {
		desc := *r.Description
		ch.Description = &desc
	}
	if r.Date != nil {
		d, err := domain.ParseDate(*r.Date)
		if err != nil {
			verr.Add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		} else {
			ch.Date = &d
		}
	}
	return ch, verr.OrNil()
}

func (r ExpenseRequest) changes() (expense.Changes, error) {
	return ExpensePatchRequest(r).changes()
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=254"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// === responses ===

type ExpenseResponse struct {
	ID            int64                `json:"id"`
	Amount        string               `json:"amount"`
	Category      domain.Category      `json:"category"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Description   string               `json:"description"`
	Date          string               `json:"date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func toExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Amount:        e.Amount.StringFixed(2),
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Description:   e.Description,
		Date:          domain.FormatDate(e.Date),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toExpenseResponses(items []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

type ExpenseListResponse struct {
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []ExpenseResponse `json:"results"`
}

type DashboardResponse struct {
	CurrentMonthTotal     float64          `json:"current_month_total"`
	PreviousMonthTotal    float64          `json:"previous_month_total"`
	TrendPercentage       float64          `json:"trend_percentage"`
	MonthlyAverage        float64          `json:"monthly_average"`
	ActiveCategoriesCount int              `json:"active_categories_count"`
	TopCategory           *domain.Category `json:"top_category"`
	TopCategoryPercentage float64          `json:"top_category_percentage"`
	CurrentWeekTotal      float64          `json:"current_week_total"`
}

// money2 rounds half away from zero to 2 places for presentation.
func money2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toDashboardResponse(s domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		CurrentMonthTotal:     money2(s.CurrentMonthTotal),
		PreviousMonthTotal:    money2(s.PreviousMonthTotal),
		TrendPercentage:       money2(s.TrendPercentage),
		MonthlyAverage:        money2(s.MonthlyAverage),
		ActiveCategoriesCount: s.ActiveCategoriesCount,
		TopCategory:           s.TopCategory,
		TopCategoryPercentage: money2(s.TopCategoryPercentage),
		CurrentWeekTotal:      money2(s.CurrentWeekTotal),
	}
}

type DailyPoint struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

type CategorySummary struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Total    string          `json:"total"`
	Color    string          `json:"color"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

type SessionResponse struct {
	User    UserResponse `json:"user"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}
