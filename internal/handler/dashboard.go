// internal/handler/dashboard.go
package handler

import (
	"net/http"
	"strconv"
	"time"

	"spending-tracker/internal/dashboard"
	"spending-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

// Summary godoc
// @Summary All dashboard cards in one call
// @Param as_of query string false "Reference date YYYY-MM-DD, defaults to today"
// @Success 200 {object} DashboardResponse
// @Router /api/v1/expenses/dashboard/ [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondError(c, domain.FieldError("as_of", "Enter a valid date."))
			return
		}
		asOf = d
	}

	summary, err := h.dashboard.Summary(c.Request.Context(), p.UserID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(summary))
}

// DailySeries godoc
// @Summary Per-day totals for the trailing window
// @Param days query int false "Window length, 1..366, default 30"
// @Success 200 {array} DailyPoint
// @Router /api/v1/expenses/series/daily/ [get]
func (h *DashboardHandler) DailySeries(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	days := dashboard.DefaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, domain.FieldError("days", "A valid integer is required."))
			return
		}
		days = n
	}

	series, err := h.dashboard.DailySeries(c.Request.Context(), p.UserID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]DailyPoint, 0, series.Len())
	for pt := range series.All() {
		out = append(out, DailyPoint{Day: domain.FormatDate(pt.Day), Total: money2(pt.Total)})
	}
	c.JSON(http.StatusOK, out)
}

// Categories godoc
// @Summary Totals per category with their chart colors
// @Param min_date query string false "YYYY-MM-DD, defaults to the first of the month"
// @Param max_date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {array} CategorySummary
// @Router /api/v1/expenses/categories/ [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	from, to := dashboard.MonthWindow(h.dashboard.Today())
	verr := domain.NewValidationError()
	if raw := c.Query("min_date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("min_date", "Enter a valid date.")
		}
		from = d
	}
	if raw := c.Query("max_date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("max_date", "Enter a valid date.")
		}
		to = d
	}
	if err := verr.OrNil(); err != nil {
		respondError(c, err)
		return
	}

	totals, err := h.dashboard.CategoryBreakdown(c.Request.Context(), p.UserID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]CategorySummary, 0, len(totals))
	for _, t := range totals {
		out = append(out, CategorySummary{
			Category: t.Category,
			Label:    t.Category.Label(),
			Total:    t.Total.StringFixed(2),
			Color:    t.Category.Color(),
		})
	}
	c.JSON(http.StatusOK, out)
}
