package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

// ErrorHandler translates errors appended to the context into the response
// envelope. Unknown errors are logged in full and returned as a generic 500;
// internal detail never reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("internal error",
					zap.String("path", c.FullPath()),
					zap.Error(appErr.Err),
				)
			}
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		logger.Log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
