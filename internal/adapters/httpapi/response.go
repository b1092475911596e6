package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"socialgraph/internal/adapters/httpapi/middleware"
	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	userPort "socialgraph/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// renderError writes the JSON error body for err and records it on the context.
func renderError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	code := apperr.CodeOf(err)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicatePair):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrValidationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrConstraintViolation):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, userPort.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "INVALID_CREDENTIALS"
	}

	message := "internal error"
	if status != http.StatusInternalServerError {
		message = err.Error()
		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// ErrorLogger logs server-side failures recorded by renderError.
func ErrorLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		for _, e := range c.Errors {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(e.Err))
		}
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(middleware.ContextUserID)
	id, err := uuid.FromString(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context", "code": "UNAUTHORIZED"})
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context, raw, field string) (uuid.UUID, bool) {
	id, err := uuid.FromString(raw)
	if err != nil {
		renderError(c, apperr.Validation("invalid "+field))
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	return parseID(c, c.Param(param), param)
}

// pageRequest reads ?page=&size=&sort=field[,asc|desc].
func pageRequest(c *gin.Context) (page.Request, bool) {
	index, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		renderError(c, apperr.Validation("invalid page"))
		return page.Request{}, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		renderError(c, apperr.Validation("invalid size"))
		return page.Request{}, false
	}
	if size > maxPageSize {
		renderError(c, apperr.Validation("size must not exceed "+strconv.Itoa(maxPageSize)))
		return page.Request{}, false
	}

	req := page.Of(index, size)
	if sort := c.Query("sort"); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		req = req.SortedBy(field, strings.EqualFold(dir, "desc"))
	}
	if err := req.Validate(); err != nil {
		renderError(c, err)
		return page.Request{}, false
	}
	return req, true
}
