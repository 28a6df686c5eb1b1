// internal/handler/respond.go
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"spending-tracker/internal/domain"
	"spending-tracker/internal/middleware"
	val "spending-tracker/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errNoPrincipal = errors.New("principal missing from context")

// respondError maps service errors onto the API's error shapes.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
	case errors.Is(err, domain.ErrTokenBlacklisted):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is blacklisted", "code": "token_not_valid"})
	case errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
	case errors.Is(err, domain.ErrLinkCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"code": []string{"Link code is invalid or expired."}}})
	default:
		_ = c.Error(err)
		slog.Error("Request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal error"})
	}
}

// principal returns the authenticated caller or writes a 500 and reports false.
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, errNoPrincipal)
	}
	return p, ok
}

// bindJSON decodes and validates the request body. On failure the 400 is
// already written.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, domain.FieldError("non_field_errors", fmt.Sprintf("JSON parse error - %s", err)))
		return false
	}
	if err := validateStruct(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func validateStruct(v any) error {
	err := val.Validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := domain.NewValidationError()
	for _, e := range fieldErrs {
		verr.Add(e.Field(), fieldErrorToString(e))
	}
	return verr
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "isodate":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "money":
		return "Ensure this value has at most 2 decimal places and is between -99999999.99 and 99999999.99."
	case "category", "paymentmethod":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	default:
		return "Invalid value."
	}
}

// pathID parses :id. Anything that is not a positive integer is a 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}
