package handlers

import (
	"net/http"
	"time"

	"github.com/bloghub-dev/bloghub/internal/response"
	"github.com/gin-gonic/gin"
)

func HealthCheck(ctx *gin.Context) {
	response.JSON(ctx, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}, "Bloghub is running")
}
