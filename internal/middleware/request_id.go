package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey é a chave do contexto Gin onde o ID da requisição é guardado.
const RequestIDKey = "request_id"

// RequestID propaga o X-Request-ID recebido ou gera um novo, devolvendo-o
// no header da resposta para correlação de logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
