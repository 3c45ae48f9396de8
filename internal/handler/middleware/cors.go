package middleware

import (
	"log/slog"

	"voucher-issuer/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware only matters for the read endpoints; gateways do not send preflights.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	slog.Info("cors enabled", "allow_origins", cfg.AllowOrigins, "allow_methods", cfg.AllowMethods)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    append([]string{requestIDHeader}, cfg.ExposeHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
