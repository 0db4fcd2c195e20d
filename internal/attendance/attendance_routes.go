package attendance

import (
	"github.com/Ashu-Az/employee-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	{
		attendances.GET("",
			middleware.RateLimitByIP(10, 20),
			h.GetAll,
		)

		attendances.GET("/employee/:employeeId",
			middleware.RateLimitByIP(10, 20),
			h.GetByEmployee,
		)

		attendances.POST("",
			middleware.RateLimitByIP(2, 10),
			middleware.Idempotency(rdb),
			h.Mark,
		)
	}
}
