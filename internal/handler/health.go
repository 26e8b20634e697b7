package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// Health verifica a conectividade com o banco e o Redis.
// Nunca expõe credenciais ou detalhes internos.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		deps := map[string]bool{
			"postgres": pingPostgres(ctx, db),
			"redis":    pingRedis(ctx, rdb),
		}

		status := http.StatusOK
		estado := "ok"
		for _, ok := range deps {
			if !ok {
				status = http.StatusServiceUnavailable
				estado = "degradado"
			}
		}

		c.JSON(status, gin.H{"status": estado, "dependencias": deps})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func pingRedis(ctx context.Context, rdb *redis.Client) bool {
	return rdb.Ping(ctx).Err() == nil
}
