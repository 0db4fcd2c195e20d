package employee

import (
	"github.com/Ashu-Az/employee-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByIP(10, 20),
			h.GetAll,
		)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			middleware.Idempotency(rdb),
			h.Create,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			h.Delete,
		)
	}
}
