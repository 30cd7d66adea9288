package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tkwed/tours-api/internal/handlers/common"
)

// Errors renders the last error a handler attached to the context. It is the
// single place where error kinds become status codes.
func Errors(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		kind := common.KindOf(err)

		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", kind.String()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)

		switch kind {
		case common.KindNotFound:
			c.String(http.StatusNotFound, "Tour not found")
		case common.KindInvalid:
			c.String(http.StatusBadRequest, err.Error())
		case common.KindUnavailable:
			c.String(http.StatusInternalServerError, "Unable to connect to database")
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
	}
}
