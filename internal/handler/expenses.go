// internal/handler/expenses.go
package handler

import (
	"net/http"
	"net/url"
	"strings"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/expense"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenses *expense.Service
}

func NewExpenseHandler(expenses *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// List godoc
// @Summary List the caller's expenses, newest first
// @Param search query string false "Substring of the description"
// @Param category query string false "Category, any case"
// @Param min_date query string false "YYYY-MM-DD"
// @Param max_date query string false "YYYY-MM-DD"
// @Param cursor query string false "Opaque page cursor"
// @Success 200 {object} ExpenseListResponse
// @Router /api/v1/expenses/ [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var cur *domain.Cursor
	if raw := c.Query("cursor"); raw != "" {
		if cur, err = domain.DecodeCursor(raw); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid cursor"})
			return
		}
	}

	page, err := h.expenses.List(c.Request.Context(), p, filter, cur)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Next:     pageURL(c, page.Next),
		Previous: pageURL(c, page.Previous),
		Results:  toExpenseResponses(page.Items),
	})
}

func parseFilter(c *gin.Context) (domain.ExpenseFilter, error) {
	f := domain.ExpenseFilter{
		Search:   c.Query("search"),
		Category: strings.TrimSpace(c.Query("category")),
	}
	verr := domain.NewValidationError()
	if raw := c.Query("min_date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("min_date", "Enter a valid date.")
		} else {
			f.MinDate = &d
		}
	}
	if raw := c.Query("max_date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("max_date", "Enter a valid date.")
		} else {
			f.MaxDate = &d
		}
	}
	return f, verr.OrNil()
}

// pageURL is the absolute URL of the current request with cursor swapped in.
func pageURL(c *gin.Context, cur *domain.Cursor) *string {
	if cur == nil {
		return nil
	}
	q := c.Request.URL.Query()
	q.Set("cursor", cur.Encode())

	u := url.URL{
		Scheme:   requestScheme(c),
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	s := u.String()
	return &s
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// Create godoc
// @Summary Record an expense for the caller
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} map[string]any
// @Router /api/v1/expenses/ [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := req.changes()
	if err != nil {
		respondError(c, err)
		return
	}

	e, err := h.expenses.Create(c.Request.Context(), p, ch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpenseResponse(*e))
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.expenses.Get(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(*e))
}

// Update replaces an expense (PUT): amount and date are required.
func (h *ExpenseHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := req.changes()
	if err != nil {
		respondError(c, err)
		return
	}
	// omitted optional fields fall back to their defaults on a full replace
	if ch.Category == nil {
		other := domain.CategoryOther
		ch.Category = &other
	}
	if ch.PaymentMethod == nil {
		other := domain.PaymentOther
		ch.PaymentMethod = &other
	}
	if ch.Description == nil {
		empty := ""
		ch.Description = &empty
	}
	h.update(c, p, id, ch)
}

// Patch applies only the fields present in the body.
func (h *ExpenseHandler) Patch(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ExpensePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := req.changes()
	if err != nil {
		respondError(c, err)
		return
	}
	h.update(c, p, id, ch)
}

func (h *ExpenseHandler) update(c *gin.Context, p domain.Principal, id int64, ch expense.Changes) {
	e, err := h.expenses.Update(c.Request.Context(), p, id, ch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(*e))
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recent godoc
// @Summary The 5 most recent expenses
// @Success 200 {array} ExpenseResponse
// @Router /api/v1/expenses/recent/ [get]
func (h *ExpenseHandler) Recent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.expenses.Recent(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponses(items))
}
