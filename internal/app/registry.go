package app

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/Ashu-Az/employee-attendance/internal/attendance"
	"github.com/Ashu-Az/employee-attendance/internal/employee"
	"github.com/Ashu-Az/employee-attendance/internal/health"
	"github.com/Ashu-Az/employee-attendance/internal/messaging/kafka"
	"github.com/Ashu-Az/employee-attendance/internal/middleware"
	"github.com/Ashu-Az/employee-attendance/internal/shared/apperror"
	"github.com/Ashu-Az/employee-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	recordCache := attendance.NewRecordCache(rdb, time.Hour)
	attendanceService := attendance.NewServiceWithOutbox(attendanceRepo, employeeRepo, recordCache, outboxRepo)
	employeeService := employee.NewServiceWithOutbox(employeeRepo, attendanceService, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	healthHandler := health.NewHandler()

	// --- Routes ---
	api := router.Group("/api")
	api.Use(middleware.ContextLogger(zap.L()))
	{
		employee.RegisterRoutes(api, employeeHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		health.RegisterRoutes(api, healthHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound,
			"The requested route does not exist", nil)
	})

	return nil
}
