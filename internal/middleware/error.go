package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/response"
)

// classify maps any error to an apperror with a client-safe message
func classify(err error) *apperror.Error {
	if ae, ok := apperror.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Wrap(err, apperror.KindConflict, "Duplicate entry")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.Wrap(err, apperror.KindNotFound, "Record not found")
	default:
		return apperror.Internal(err)
	}
}

// ErrorHandler renders the last error attached with c.Error as the error
// envelope. Details are exposed only when exposeDetails is set.
func ErrorHandler(log *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		ae := classify(err)
		status := ae.Kind.HTTPStatus()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Stringer("kind", ae.Kind),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Debug("request rejected", fields...)
		}

		var details any
		if exposeDetails {
			details = err.Error()
		}
		response.Error(c, status, ae.Message, details)
	}
}

// Recovery logs panics and answers with a 500 envelope
func Recovery(log *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				var details any
				if exposeDetails {
					details = rec
				}
				response.Error(c, http.StatusInternalServerError, "Internal server error", details)
			}
		}()
		c.Next()
	}
}
