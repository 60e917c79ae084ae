package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/daneswara/kafe-pos/config"
)

// CORSMiddlewares mengizinkan origin dari daftar CORS_ALLOW_ORIGINS.
func CORSMiddlewares() gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, origin := range config.Get().CORSAllowOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
