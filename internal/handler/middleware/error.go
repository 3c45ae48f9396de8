package middleware

import (
	"log/slog"
	"net/http"

	"voucher-issuer/internal/handler/httperr"
	"voucher-issuer/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const errorStackLines = 12

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if resp, ok := e.Meta.(httperr.Response); ok && resp.Status >= http.StatusInternalServerError {
				slog.ErrorContext(c.Request.Context(), "request failed",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"error", e.Err.Error(),
					"stack", errs.ExtractStackLines(e.Err, errorStackLines))
			}
		}

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
