package health

import (
	"net/http"
	"time"

	"github.com/Ashu-Az/employee-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check is a liveness probe; deployment platforms poll it.
func (h *Handler) Check(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
