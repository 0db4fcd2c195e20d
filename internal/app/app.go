package app

import (
	"context"
	"os"

	"github.com/Ashu-Az/employee-attendance/internal/attendance"
	"github.com/Ashu-Az/employee-attendance/internal/employee"
	"github.com/Ashu-Az/employee-attendance/internal/messaging/kafka"
	"github.com/Ashu-Az/employee-attendance/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	// The unique indexes created here (employee business key, one status per
	// employee per day) are load-bearing, not just lookup accelerators.
	if err := gormDB.AutoMigrate(&employee.Employee{}, &attendance.AttendanceRecord{}); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := kafka.EnsureOutboxTable(context.Background(), sqlDB); err != nil {
		return err
	}

	// Redis is optional: without it the attendance cache and idempotency
	// middleware degrade to pass-through.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
	} else {
		zap.L().Warn("REDIS_ADDR not set, running without cache and idempotency")
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
