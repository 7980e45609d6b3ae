package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware - middleware, разрешающее запросы с любых источников.
// API намеренно публичный; OPTIONS завершается сразу со статусом 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
