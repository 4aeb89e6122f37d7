package controller

import (
	"escape_room_backend/internal/service"
	"escape_room_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	workbook *service.WorkbookService
}

func NewHealthController(workbook *service.WorkbookService) *HealthController {
	return &HealthController{workbook: workbook}
}

// HealthCheck reports liveness plus whether a question set is loaded,
// which is what a game master actually needs to know before doors open.
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"rooms":  len(c.workbook.Rooms()),
	})
}
