// internal/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  allowDealerOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Storefronts live on per-dealership subdomains.
func allowDealerOrigins(origin string) bool {
	return origin == "http://localhost:3000" ||
		origin == "https://app.drivelane.io" ||
		len(origin) > len(".drivelane.io") && origin[len(origin)-len(".drivelane.io"):] == ".drivelane.io"
}
