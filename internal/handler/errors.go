package handler

import (
	"errors"
	"net/http"

	"krishiconnect/internal/middleware"
	"krishiconnect/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errNoAuthUser    = errors.New("user ID not found in context")
	errNoAuthRole    = errors.New("user role not found in context")
	errNoAuthSession = errors.New("session ID not found in context")
)

// statusFor maps a service error to its HTTP status. Zero means unexpected.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	return 0
}

// respondError writes {"message": ...} for err. Unexpected errors are logged
// and answered with fallback instead of their text.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == 0 {
		logger.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
		return
	}

	body := gin.H{"message": err.Error()}
	var mismatch *service.RoleMismatchError
	if errors.As(err, &mismatch) {
		body["role"] = mismatch.Actual
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	c.JSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int64, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errNoAuthUser
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// Helper to get authenticated user role from context
func getAuthUserRole(c *gin.Context) (string, error) {
	roleVal, exists := c.Get(middleware.AuthRoleKey)
	if !exists {
		return "", errNoAuthRole
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", errors.New("invalid user role type in context")
	}
	return role, nil
}

func getAuthSessionID(c *gin.Context) (string, error) {
	sid := c.GetString(middleware.AuthSessionKey)
	if sid == "" {
		return "", errNoAuthSession
	}
	return sid, nil
}
