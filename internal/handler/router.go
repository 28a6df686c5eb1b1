// internal/handler/router.go
package handler

import (
	"log/slog"
	"net/http"

	"spending-tracker/internal/account"
	"spending-tracker/internal/auth"
	"spending-tracker/internal/dashboard"
	"spending-tracker/internal/expense"
	"spending-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens    *auth.TokenService
	Accounts  *account.Service
	Expenses  *expense.Service
	Dashboard *dashboard.Service
	Logger    *slog.Logger
}

// NewRouter wires every API route. Each route answers with and without a
// trailing slash.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(middleware.RequestLogger(d.Logger), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.NewAuthMiddleware(d.Tokens).RequireAuth()
	authH := NewAuthHandler(d.Accounts)
	expenseH := NewExpenseHandler(d.Expenses)
	dashboardH := NewDashboardHandler(d.Dashboard)

	v1 := router.Group("/api/v1")

	public := v1.Group("/auth")
	{
		handle(public, http.MethodPost, "/register", authH.Register)
		handle(public, http.MethodPost, "/login", authH.Login)
		handle(public, http.MethodPost, "/refresh", authH.Refresh)
	}

	private := v1.Group("/auth", requireAuth)
	{
		handle(private, http.MethodPost, "/logout", authH.Logout)
		handle(private, http.MethodGet, "/profile", authH.Profile)
		handle(private, http.MethodPut, "/profile", authH.UpdateProfile)
		handle(private, http.MethodPatch, "/profile", authH.UpdateProfile)
		handle(private, http.MethodPost, "/change-password", authH.ChangePassword)
		handle(private, http.MethodPut, "/change-password", authH.ChangePassword)
		handle(private, http.MethodPatch, "/change-password", authH.ChangePassword)
		handle(private, http.MethodPost, "/telegram/link-code", authH.LinkCode)
	}

	expenses := v1.Group("/expenses", requireAuth)
	{
		handle(expenses, http.MethodGet, "/dashboard", dashboardH.Summary)
		handle(expenses, http.MethodGet, "/series/daily", dashboardH.DailySeries)
		handle(expenses, http.MethodGet, "/categories", dashboardH.Categories)
		handle(expenses, http.MethodGet, "/recent", expenseH.Recent)

		handle(expenses, http.MethodGet, "", expenseH.List)
		handle(expenses, http.MethodPost, "", expenseH.Create)
		handle(expenses, http.MethodGet, "/:id", expenseH.Get)
		handle(expenses, http.MethodPut, "/:id", expenseH.Update)
		handle(expenses, http.MethodPatch, "/:id", expenseH.Patch)
		handle(expenses, http.MethodDelete, "/:id", expenseH.Delete)
	}

	return router
}

func handle(r gin.IRoutes, method, path string, h gin.HandlerFunc) {
	r.Handle(method, path, h)
	r.Handle(method, path+"/", h)
}
